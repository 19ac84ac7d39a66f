package tabular

import "testing"

func TestDetectFormat_ContentTypePriority(t *testing.T) {
	// Declared content type wins even when sniffing and the URL suffix
	// both disagree.
	data := []byte("%PDF-1.7 binary goes here")
	got := DetectFormat("https://example.com/data.xlsx", "text/csv", data)
	if got != FormatCSV {
		t.Errorf("DetectFormat() = %q, want %q", got, FormatCSV)
	}
}

func TestDetectFormat_ContentTypeMarkers(t *testing.T) {
	tests := []struct {
		contentType string
		want        Format
	}{
		{"text/csv; charset=utf-8", FormatCSV},
		{"text/plain", FormatCSV},
		{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", FormatXLSX},
		{"application/vnd.ms-excel", FormatXLSX},
		{"application/pdf", FormatPDF},
	}
	for _, tt := range tests {
		if got := DetectFormat("https://example.com/data", tt.contentType, nil); got != tt.want {
			t.Errorf("DetectFormat(%q) = %q, want %q", tt.contentType, got, tt.want)
		}
	}
}

func TestDetectFormat_SniffBeatsSuffix(t *testing.T) {
	// No content type: magic bytes decide before the URL suffix does.
	data := []byte("%PDF-1.4\n...")
	got := DetectFormat("https://example.com/report.csv", "", data)
	if got != FormatPDF {
		t.Errorf("DetectFormat() = %q, want %q", got, FormatPDF)
	}
}

func TestDetectFormat_SniffZipIsSpreadsheet(t *testing.T) {
	data := []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00}
	if got := DetectFormat("https://example.com/download", "", data); got != FormatXLSX {
		t.Errorf("DetectFormat() = %q, want %q", got, FormatXLSX)
	}
}

func TestDetectFormat_SuffixFallback(t *testing.T) {
	tests := []struct {
		url  string
		want Format
	}{
		{"https://example.com/data.CSV", FormatCSV},
		{"https://example.com/data.xlsx", FormatXLSX},
		{"https://example.com/data.xls", FormatXLSX},
		{"https://example.com/data.pdf", FormatPDF},
	}
	for _, tt := range tests {
		// Binary junk that sniffing cannot place.
		data := []byte{0xFF, 0xFE, 0x00, 0x01}
		if got := DetectFormat(tt.url, "", data); got != tt.want {
			t.Errorf("DetectFormat(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestDetectFormat_Unknown(t *testing.T) {
	data := []byte{0xFF, 0xFE, 0x00, 0x01}
	if got := DetectFormat("https://example.com/page", "", data); got != FormatUnknown {
		t.Errorf("DetectFormat() = %q, want FormatUnknown", got)
	}
}
