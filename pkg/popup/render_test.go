package popup_test

import (
	"testing"

	"github.com/vango-go/popup/pkg/popup"
)

func TestDescribeDefaults(t *testing.T) {
	d := popup.Describe(popup.Config{Text: "hello"})

	if d.Style != popup.StyleWithArrow {
		t.Errorf("Style = %v, want with-arrow by default", d.Style)
	}
	if d.Content != popup.ContentText {
		t.Errorf("Content = %v, want text by default", d.Content)
	}
	if d.Text != "hello" || d.ShowHeader {
		t.Errorf("descriptor = %+v, want text without header", d)
	}
}

func TestDescribeBasic(t *testing.T) {
	d := popup.Describe(popup.Config{Basic: true})
	if d.Style != popup.StyleBasic {
		t.Errorf("Style = %v, want basic", d.Style)
	}
}

func TestDescribeHeader(t *testing.T) {
	d := popup.Describe(popup.Config{Header: "Title", Text: "Body"})
	if !d.ShowHeader || d.Header != "Title" {
		t.Errorf("descriptor = %+v, want visible header", d)
	}
}

func TestDescribeCustomContent(t *testing.T) {
	d := popup.Describe(popup.Config{
		CustomContent: true,
		Header:        "ignored",
		Text:          "ignored",
	})

	if d.Content != popup.ContentTemplated {
		t.Errorf("Content = %v, want templated", d.Content)
	}
	if d.Header != "" || d.Text != "" || d.ShowHeader {
		t.Errorf("descriptor = %+v, templated content must drop header/text", d)
	}
}

func TestVariantStrings(t *testing.T) {
	if popup.StyleBasic.String() != "basic" || popup.StyleWithArrow.String() != "with-arrow" {
		t.Error("unexpected Style strings")
	}
	if popup.ContentTemplated.String() != "templated" || popup.ContentText.String() != "text" {
		t.Error("unexpected ContentSource strings")
	}
}
