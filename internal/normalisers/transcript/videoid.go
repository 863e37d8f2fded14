package transcript

import (
	"net/url"
	"strings"
)

var youtubeHosts = map[string]bool{
	"youtube.com":     true,
	"www.youtube.com": true,
	"m.youtube.com":   true,
}

// VideoID extracts the video id from a YouTube link. Recognised forms:
//
//	http://youtu.be/SA2iWivDJiE
//	http://www.youtube.com/watch?v=_oPAwA_Udwc&feature=feedu
//	http://www.youtube.com/embed/SA2iWivDJiE
//	http://www.youtube.com/v/SA2iWivDJiE?version=3&amp;hl=en_US
func VideoID(link string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	if host == "youtu.be" {
		return nonEmpty(strings.TrimPrefix(u.Path, "/"))
	}
	if !youtubeHosts[host] {
		return "", false
	}

	switch {
	case u.Path == "/watch":
		return nonEmpty(u.Query().Get("v"))
	case strings.HasPrefix(u.Path, "/embed/"):
		return pathSegment(u.Path, 2)
	case strings.HasPrefix(u.Path, "/v/"):
		return pathSegment(u.Path, 2)
	}
	return "", false
}

func pathSegment(path string, i int) (string, bool) {
	parts := strings.Split(path, "/")
	if len(parts) <= i {
		return "", false
	}
	return nonEmpty(parts[i])
}

func nonEmpty(s string) (string, bool) {
	return s, s != ""
}
