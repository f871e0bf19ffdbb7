package editor

import (
	"encoding/base64"
	"strings"
	"testing"
)

const sampleDoc = `<!DOCTYPE html>
<html><head><title>Sample</title></head><body>
<h1>Welcome</h1>
<p>We sell flowers.</p>
<div><span>Open daily</span></div>
<p><img src="data:image/png;base64,AAAA" alt="storefront"></p>
<ul><li>Roses</li><li>Tulips</li></ul>
</body></html>`

func loaded(t *testing.T) *Editor {
	t.Helper()
	e := New()
	if err := e.Load(sampleDoc); err != nil {
		t.Fatal(err)
	}
	return e
}

func findRegion(t *testing.T, e *Editor, kind, text string) Region {
	t.Helper()
	for _, r := range e.Regions() {
		if r.Kind == kind && r.Text == text {
			return r
		}
	}
	t.Fatalf("no %s region with text %q in %+v", kind, text, e.Regions())
	return Region{}
}

func TestAnnotationMarksLeafTextAndImages(t *testing.T) {
	e := loaded(t)
	regions := e.Regions()

	var texts, images int
	for _, r := range regions {
		switch r.Kind {
		case "text":
			texts++
		case "image":
			images++
		}
	}
	// h1, p, span, two li — the p wrapping the img has no direct text.
	if texts != 5 {
		t.Errorf("expected 5 text regions, got %d: %+v", texts, regions)
	}
	if images != 1 {
		t.Errorf("expected 1 image region, got %d", images)
	}
}

func TestContainerElementsNotEditable(t *testing.T) {
	e := New()
	if err := e.Load(`<html><body><p>outer <span>inner</span></p><a><img src="x"></a></body></html>`); err != nil {
		t.Fatal(err)
	}
	for _, r := range e.Regions() {
		if r.Kind == "text" && r.Tag == "a" {
			t.Error("anchor wrapping an image must not be text-editable")
		}
	}
	// The outer p has direct text but no blocking descendant (span is inline),
	// so both p and span are editable.
	findRegion(t, e, "text", "outer")
	findRegion(t, e, "text", "inner")
}

func TestExportIsStableWithoutEdits(t *testing.T) {
	e := loaded(t)
	first := e.ExportHTML()
	second := e.ExportHTML()
	if first != second {
		t.Error("export must be byte-identical with no intervening edit")
	}
	if !strings.HasPrefix(first, "<!DOCTYPE html>\n") {
		t.Errorf("export missing doctype prefix: %q", first[:40])
	}
}

func TestCommitTextReflectsInExport(t *testing.T) {
	e := loaded(t)
	r := findRegion(t, e, "text", "Welcome")

	if err := e.CommitText(r.ID, "Hello there"); err != nil {
		t.Fatal(err)
	}
	out := e.ExportHTML()
	if !strings.Contains(out, "Hello there") {
		t.Error("export does not reflect the committed text")
	}
	if strings.Contains(out, "Welcome") {
		t.Error("old text still present after commit")
	}
	if e.LastSynced() != out {
		t.Error("commit must refresh the serialization cache")
	}
}

func TestImageReplacementChangesOnlyTheSource(t *testing.T) {
	e := loaded(t)
	img := findRegion(t, e, "image", "storefront")

	before := e.ExportHTML()
	if err := e.SelectImage(img.ID); err != nil {
		t.Fatal(err)
	}
	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	if err := e.ApplyImage(payload, "image/png"); err != nil {
		t.Fatal(err)
	}

	after := e.ExportHTML()
	wantSrc := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)
	if !strings.Contains(after, wantSrc) {
		t.Error("new image source missing from export")
	}

	// Nothing but the src attribute may differ.
	diffA := strings.Replace(before, "data:image/png;base64,AAAA", "", 1)
	diffB := strings.Replace(after, wantSrc, "", 1)
	if diffA != diffB {
		t.Error("image replacement altered more than the image source")
	}
}

func TestPendingImageSemantics(t *testing.T) {
	e := New()
	if err := e.Load(`<html><body><img src="a" alt="first"><img src="b" alt="second"></body></html>`); err != nil {
		t.Fatal(err)
	}
	first := findRegion(t, e, "image", "first")
	second := findRegion(t, e, "image", "second")

	if err := e.ApplyImage([]byte{1}, "image/png"); err != ErrNoPendingImage {
		t.Errorf("expected ErrNoPendingImage, got %v", err)
	}

	// A newer selection replaces the pending target.
	if err := e.SelectImage(first.ID); err != nil {
		t.Fatal(err)
	}
	if err := e.SelectImage(second.ID); err != nil {
		t.Fatal(err)
	}
	if got := e.PendingImage(); got != second.ID {
		t.Errorf("pending = %q, want %q", got, second.ID)
	}

	if err := e.ApplyImage([]byte{1}, "text/html"); err != ErrBadImageType {
		t.Errorf("expected ErrBadImageType, got %v", err)
	}
	if err := e.ApplyImage([]byte{1}, "image/jpeg"); err != nil {
		t.Fatal(err)
	}
	if got := e.PendingImage(); got != "" {
		t.Errorf("pending target must clear after apply, got %q", got)
	}
}

func TestSelectImageRejectsTextRegion(t *testing.T) {
	e := loaded(t)
	r := findRegion(t, e, "text", "Welcome")
	if err := e.SelectImage(r.ID); err != ErrNotAnImage {
		t.Errorf("expected ErrNotAnImage, got %v", err)
	}
}

func TestExportFallsBackBeforeLoad(t *testing.T) {
	e := New()
	if got := e.ExportHTML(); got != "" {
		t.Errorf("expected empty fallback before load, got %q", got)
	}
	if err := e.CommitText("r1", "x"); err != ErrNotLoaded {
		t.Errorf("expected ErrNotLoaded, got %v", err)
	}
}

func TestLoadResetsRegionsAndPending(t *testing.T) {
	e := loaded(t)
	img := findRegion(t, e, "image", "storefront")
	if err := e.SelectImage(img.ID); err != nil {
		t.Fatal(err)
	}
	if err := e.Load(`<html><body><h1>Fresh</h1></body></html>`); err != nil {
		t.Fatal(err)
	}
	if got := e.PendingImage(); got != "" {
		t.Errorf("pending image survived a reload: %q", got)
	}
	findRegion(t, e, "text", "Fresh")
}

func TestPreviewModes(t *testing.T) {
	cases := []struct {
		mode  PreviewMode
		width int
	}{
		{PreviewDesktop, 0},
		{PreviewTablet, 768},
		{PreviewMobile, 375},
	}
	for _, tc := range cases {
		if got := tc.mode.Width(); got != tc.width {
			t.Errorf("%s width = %d, want %d", tc.mode, got, tc.width)
		}
	}
	if _, err := ParsePreviewMode("watch"); err == nil {
		t.Error("expected unknown preview mode to fail")
	}
}
