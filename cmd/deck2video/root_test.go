package main

import (
	"reflect"
	"testing"
)

func TestDefaultPaths(t *testing.T) {
	if got := defaultManifestPath("talks/deck.md"); got != "talks/deck.slides.json" {
		t.Errorf("manifest = %s", got)
	}
	if got := defaultOutputPath("talks/deck.md"); got != "talks/deck.mp4" {
		t.Errorf("output = %s", got)
	}
	if got := defaultOutputPath("deck"); got != "deck.mp4" {
		t.Errorf("output without extension = %s", got)
	}
}

func TestParseSlideList(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		want    []int
		wantErr bool
	}{
		{name: "single", arg: "3", want: []int{3}},
		{name: "several", arg: "2,3,7", want: []int{2, 3, 7}},
		{name: "spaces tolerated", arg: " 2, 3 ,7 ", want: []int{2, 3, 7}},
		{name: "trailing comma tolerated", arg: "2,3,", want: []int{2, 3}},
		{name: "empty", arg: "", wantErr: true},
		{name: "not a number", arg: "2,x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSlideList(tt.arg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSlideList(%q) error = %v", tt.arg, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseSlideList(%q) = %v, want %v", tt.arg, got, tt.want)
			}
		})
	}
}

func TestRootCommandWiring(t *testing.T) {
	root := newRootCmd()

	names := map[string]bool{}
	for _, sub := range root.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"redo", "reassemble", "watch"} {
		if !names[want] {
			t.Errorf("missing subcommand %s", want)
		}
	}

	for _, flag := range []string{
		"config", "manifest", "output", "voice", "device", "exaggeration",
		"cfg-weight", "temperature", "hold-duration", "fps", "temp-dir",
		"pronunciations", "audio-padding", "keep-temp", "interactive",
	} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing flag --%s", flag)
		}
	}
}
