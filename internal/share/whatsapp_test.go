package share

import (
	"net/url"
	"strings"
	"testing"
)

func TestBuildMessageWithBackup(t *testing.T) {
	msg := BuildMessage("Asha", "Doctor", "https://drive.google.com/uc?id=f1&export=download")
	if !strings.Contains(msg, "Asha's Future Career Self!") {
		t.Fatalf("message missing header: %s", msg)
	}
	if !strings.Contains(msg, "future Doctor") {
		t.Fatalf("message missing career: %s", msg)
	}
	if !strings.Contains(msg, "Download image: https://drive.google.com/uc?id=f1&export=download") {
		t.Fatalf("message missing backup link: %s", msg)
	}
}

func TestBuildMessageWithoutBackup(t *testing.T) {
	msg := BuildMessage("Asha", "Doctor", "")
	if !strings.Contains(msg, "Download is available inside the app.") {
		t.Fatalf("message missing in-app hint: %s", msg)
	}
}

func TestLinkEncoding(t *testing.T) {
	link := Link("hello world & more")
	if !strings.HasPrefix(link, "https://wa.me/?text=") {
		t.Fatalf("link template mismatch: %s", link)
	}
	if strings.Contains(link, "+") {
		t.Fatalf("spaces must encode as %%20, got %s", link)
	}

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	if got := u.Query().Get("text"); got != "hello world & more" {
		t.Fatalf("round-tripped text %q", got)
	}
}
