package cmd

import (
	"testing"

	"github.com/marcus/modalhost/internal/config"
	"github.com/spf13/pflag"
)

func TestFirstNonFlagArg(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "skips leading flags",
			args: []string{"--flag", "unknown-cmd"},
			want: "unknown-cmd",
		},
		{
			name: "all flags",
			args: []string{"-h", "--help"},
			want: "",
		},
		{
			name: "finds command after help",
			args: []string{"--help", "prompt"},
			want: "prompt",
		},
		{
			name: "skips flag values",
			args: []string{"--log-file", "out.log", "--debug"},
			want: "",
		},
		{
			name: "command after flag value",
			args: []string{"--log-file", "out.log", "config"},
			want: "config",
		},
		{
			name: "no args",
			args: nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstNonFlagArg(tt.args); got != tt.want {
				t.Errorf("firstNonFlagArg(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestHelpRequested(t *testing.T) {
	if !helpRequested([]string{"--debug", "-h"}) {
		t.Error("helpRequested missed -h")
	}
	if helpRequested([]string{"--debug"}) {
		t.Error("helpRequested reported help for --debug")
	}
}

func TestReducedMotionPrecedence(t *testing.T) {
	tests := []struct {
		name string
		args []string
		cfg  bool
		want bool
	}{
		{"config only", nil, true, true},
		{"flag overrides config", []string{"--reduced-motion=false"}, true, false},
		{"flag enables", []string{"--reduced-motion"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			fs.BoolVar(&flagReducedMotion, "reduced-motion", false, "")
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("parse: %v", err)
			}
			got := reducedMotion(fs, &config.Config{ReducedMotion: tt.cfg})
			if got != tt.want {
				t.Errorf("reducedMotion() = %v, want %v", got, tt.want)
			}
			if n := len(hostOptions(fs, &config.Config{})); n == 0 {
				t.Error("hostOptions returned no options")
			}
		})
	}
}
