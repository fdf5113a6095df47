package game

import (
	"testing"
)

func strPtr(s string) *string { return &s }

func TestBackgroundPresetClearsCustomImage(t *testing.T) {
	a := StarterAccount()
	a.Background = "dusk"
	a.BackgroundImage = "data:image/png;base64,abc"

	in := BackgroundInput{Background: strPtr("forest")}
	p, err := in.patch()
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	next, err := mergeAccountDoc(a, p)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if next.Background != "forest" {
		t.Fatalf("background got %q want forest", next.Background)
	}
	if next.BackgroundImage != "" {
		t.Fatalf("preset selection must clear the custom image, got %q", next.BackgroundImage)
	}
}

func TestBackgroundExplicitImageKept(t *testing.T) {
	a := StarterAccount()
	in := BackgroundInput{
		Background:      strPtr("steel"),
		BackgroundImage: strPtr("data:image/png;base64,xyz"),
	}
	p, err := in.patch()
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	next, err := mergeAccountDoc(a, p)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if next.Background != "steel" || next.BackgroundImage != "data:image/png;base64,xyz" {
		t.Fatalf("explicit image must survive: %+v", next)
	}
}

func TestProfilePatchLeavesOtherFields(t *testing.T) {
	a := StarterAccount()
	a.UserName = "old name"
	a.ProfileImage = "old.png"

	in := ProfileInput{UserName: strPtr("new name")}
	p, err := in.patch()
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	next, err := mergeAccountDoc(a, p)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if next.UserName != "new name" {
		t.Fatalf("userName got %q", next.UserName)
	}
	if next.ProfileImage != "old.png" {
		t.Fatalf("untouched profile image changed: %q", next.ProfileImage)
	}
	if next.Balance != a.Balance || len(next.Cars) != len(a.Cars) {
		t.Fatalf("profile patch leaked into economy fields")
	}
}
