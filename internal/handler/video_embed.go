package handler

import (
	"fmt"
	htmlstd "html"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/portfolio/internal/locale"
)

// 项目描述里单独一行的视频链接会被替换成内嵌播放器，目前支持 YouTube 与 Vimeo。
var (
	demoVideoLinePattern = regexp.MustCompile(`^\s*<?((?:https?://)?[^\s<>]+)>?\s*$`)
	demoVideoSrcPattern  = regexp.MustCompile(`^https://(?:www\.youtube-nocookie\.com/embed/|player\.vimeo\.com/video/)`)
	demoVideoTimePattern = regexp.MustCompile(`(?i)(\d+)(h|m|s)`)
	orderedListPattern   = regexp.MustCompile(`^\d+\.\s+`)
)

type demoVideo struct {
	Platform string
	Source   string
	EmbedURL string
}

func buildContentSanitizer() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("iframe")
	policy.AllowAttrs("class", "data-video-platform").OnElements("div")
	policy.AllowAttrs("src").Matching(demoVideoSrcPattern).OnElements("iframe")
	policy.AllowAttrs("title", "allow", "allowfullscreen", "loading", "referrerpolicy").OnElements("iframe")
	return policy
}

// embedDemoVideos rewrites standalone video links outside code blocks, quotes and lists.
func embedDemoVideos(markdown, lang string) string {
	if strings.TrimSpace(markdown) == "" {
		return markdown
	}

	lines := strings.Split(markdown, "\n")
	fence := ""
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if marker := fenceMarker(trimmed); marker != "" {
			switch {
			case fence == "":
				fence = marker
			case strings.HasPrefix(trimmed, fence):
				fence = ""
			}
			continue
		}
		if fence != "" || strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t") || skipVideoLine(trimmed) {
			continue
		}

		match := demoVideoLinePattern.FindStringSubmatch(trimmed)
		if match == nil {
			continue
		}
		video, ok := parseDemoVideo(match[1])
		if !ok {
			continue
		}
		lines[i] = video.html(lang)
	}
	return strings.Join(lines, "\n")
}

func fenceMarker(line string) string {
	for _, marker := range []string{"```", "~~~"} {
		if strings.HasPrefix(line, marker) {
			return marker
		}
	}
	return ""
}

func skipVideoLine(line string) bool {
	if line == "" || strings.HasPrefix(line, ">") {
		return true
	}
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "+ ") {
		return true
	}
	return orderedListPattern.MatchString(line)
}

func parseDemoVideo(raw string) (demoVideo, bool) {
	value := strings.TrimSpace(raw)
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		value = "https://" + value
	}
	parsed, err := url.Parse(value)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return demoVideo{}, false
	}

	host := strings.ToLower(parsed.Hostname())
	switch {
	case host == "youtu.be" || isHostOrSubdomain(host, "youtube.com"):
		return parseYouTube(parsed, host, raw)
	case isHostOrSubdomain(host, "vimeo.com"):
		return parseVimeo(parsed, raw)
	}
	return demoVideo{}, false
}

func parseYouTube(u *url.URL, host, source string) (demoVideo, bool) {
	path := strings.Trim(u.Path, "/")
	id := ""
	if host == "youtu.be" {
		id = path
	} else if path == "watch" {
		id = u.Query().Get("v")
	} else {
		for _, prefix := range []string{"shorts/", "embed/", "live/"} {
			if strings.HasPrefix(path, prefix) {
				id = strings.TrimPrefix(path, prefix)
				break
			}
		}
	}
	id, _, _ = strings.Cut(id, "/")
	if id == "" {
		return demoVideo{}, false
	}

	params := url.Values{}
	params.Set("rel", "0")
	params.Set("playsinline", "1")
	start := u.Query().Get("start")
	if start == "" {
		start = u.Query().Get("t")
	}
	if seconds := parseStartSeconds(start); seconds > 0 {
		params.Set("start", strconv.Itoa(seconds))
	}

	return demoVideo{
		Platform: "youtube",
		Source:   source,
		EmbedURL: "https://www.youtube-nocookie.com/embed/" + url.PathEscape(id) + "?" + params.Encode(),
	}, true
}

func parseVimeo(u *url.URL, source string) (demoVideo, bool) {
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	id := segments[len(segments)-1]
	if len(segments) >= 2 && segments[0] == "video" {
		id = segments[1]
	}
	if !onlyDigits(id) {
		return demoVideo{}, false
	}
	return demoVideo{
		Platform: "vimeo",
		Source:   source,
		EmbedURL: "https://player.vimeo.com/video/" + id,
	}, true
}

// parseStartSeconds accepts "90" as well as "1m30s".
func parseStartSeconds(value string) int {
	value = strings.TrimSpace(value)
	if onlyDigits(value) {
		seconds, _ := strconv.Atoi(value)
		return seconds
	}
	total := 0
	for _, match := range demoVideoTimePattern.FindAllStringSubmatch(value, -1) {
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		switch strings.ToLower(match[2]) {
		case "h":
			total += n * 3600
		case "m":
			total += n * 60
		case "s":
			total += n
		}
	}
	return total
}

func onlyDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (v demoVideo) html(lang string) string {
	return fmt.Sprintf(
		`<div class="video-embed" data-video-platform="%s"><iframe src="%s" title="%s" loading="lazy" allow="accelerometer; encrypted-media; gyroscope; picture-in-picture; web-share" allowfullscreen referrerpolicy="strict-origin-when-cross-origin"></iframe></div>`,
		htmlstd.EscapeString(v.Platform),
		htmlstd.EscapeString(v.EmbedURL),
		htmlstd.EscapeString(locale.T(lang, "videoPlayer")),
	)
}

func isHostOrSubdomain(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}
