package handler

import (
	"strings"
	"testing"
)

func TestParseDemoVideo(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		platform string
		embed    string
	}{
		{name: "watch", input: "https://www.youtube.com/watch?v=abc123&t=1m30s", platform: "youtube", embed: "https://www.youtube-nocookie.com/embed/abc123?playsinline=1&rel=0&start=90"},
		{name: "short link", input: "youtu.be/xyz", platform: "youtube", embed: "https://www.youtube-nocookie.com/embed/xyz?playsinline=1&rel=0"},
		{name: "shorts", input: "https://youtube.com/shorts/s1/", platform: "youtube", embed: "https://www.youtube-nocookie.com/embed/s1?playsinline=1&rel=0"},
		{name: "vimeo", input: "https://vimeo.com/76979871", platform: "vimeo", embed: "https://player.vimeo.com/video/76979871"},
		{name: "vimeo player", input: "https://player.vimeo.com/video/42", platform: "vimeo", embed: "https://player.vimeo.com/video/42"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			video, ok := parseDemoVideo(tc.input)
			if !ok {
				t.Fatalf("expected %q to parse", tc.input)
			}
			if video.Platform != tc.platform {
				t.Fatalf("platform = %q, want %q", video.Platform, tc.platform)
			}
			if video.EmbedURL != tc.embed {
				t.Fatalf("embed = %q, want %q", video.EmbedURL, tc.embed)
			}
		})
	}

	for _, input := range []string{"https://example.com/watch?v=1", "https://vimeo.com/channels/staff", "ftp://youtube.com/watch?v=1", "https://www.youtube.com/watch"} {
		if _, ok := parseDemoVideo(input); ok {
			t.Fatalf("expected %q to be rejected", input)
		}
	}
}

func TestEmbedDemoVideosSkipsCodeAndLists(t *testing.T) {
	markdown := strings.Join([]string{
		"Demo:",
		"",
		"https://youtu.be/abc",
		"",
		"```",
		"https://youtu.be/code",
		"```",
		"- https://youtu.be/list",
		"> https://youtu.be/quote",
	}, "\n")

	out := embedDemoVideos(markdown, "ar")
	if !strings.Contains(out, `src="https://www.youtube-nocookie.com/embed/abc?playsinline=1&amp;rel=0"`) {
		t.Fatalf("expected standalone link to be embedded, got:\n%s", out)
	}
	if !strings.Contains(out, `title="مشغل الفيديو"`) {
		t.Fatalf("expected localized player title, got:\n%s", out)
	}
	for _, kept := range []string{"https://youtu.be/code", "- https://youtu.be/list", "> https://youtu.be/quote"} {
		if !strings.Contains(out, kept) {
			t.Fatalf("expected %q to stay untouched", kept)
		}
	}
}

func TestRenderMarkdownKeepsVideoIframe(t *testing.T) {
	html, err := renderMarkdown("Intro\n\nhttps://vimeo.com/42\n\n<script>alert(1)</script>", "en")
	if err != nil {
		t.Fatalf("renderMarkdown: %v", err)
	}
	out := string(html)
	if !strings.Contains(out, `<iframe src="https://player.vimeo.com/video/42"`) {
		t.Fatalf("expected vimeo iframe, got:\n%s", out)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("expected script to be stripped, got:\n%s", out)
	}
}
