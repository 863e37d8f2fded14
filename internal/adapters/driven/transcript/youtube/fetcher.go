// Package youtube fetches video transcripts from the caption tracks that a
// YouTube watch page advertises.
package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/encephalon/internal/core/domain"
	"github.com/custodia-labs/encephalon/internal/core/ports/driven"
	"github.com/custodia-labs/encephalon/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.TranscriptFetcher = (*Fetcher)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://www.youtube.com"
	DefaultTimeout = 30 * time.Second

	// DefaultRate is the request rate towards YouTube, in requests per second.
	DefaultRate = 1.0

	// maxPageSize caps how much of a watch page is read.
	maxPageSize = 8 << 20
)

// captionMarker precedes the caption track list in the watch page.
var captionMarker = []byte(`"captionTracks":`)

// Config holds configuration for the transcript fetcher.
type Config struct {
	// BaseURL is the site root (default: https://www.youtube.com).
	BaseURL string

	// Languages are preferred caption languages, best first (default: en).
	Languages []string

	// Rate limits requests per second (default: 1).
	Rate float64

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration
}

// Fetcher downloads transcripts.
type Fetcher struct {
	client    *http.Client
	baseURL   string
	languages []string
	limiter   *rate.Limiter
}

// CaptionTrack is one entry of the watch page's captionTracks list.
type CaptionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

func (c CaptionTrack) generated() bool {
	return c.Kind == "asr"
}

// timedText is the caption XML format.
type timedText struct {
	Texts []struct {
		Start string `xml:"start,attr"`
		Dur   string `xml:"dur,attr"`
		Body  string `xml:",chardata"`
	} `xml:"text"`
}

// New creates a transcript fetcher.
func New(cfg Config) *Fetcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = []string{"en"}
	}
	if cfg.Rate <= 0 {
		cfg.Rate = DefaultRate
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Fetcher{
		client:    &http.Client{Timeout: cfg.Timeout},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		languages: cfg.Languages,
		limiter:   rate.NewLimiter(rate.Limit(cfg.Rate), 1),
	}
}

// Fetch returns the transcript of videoID as plain text, one caption per line.
func (f *Fetcher) Fetch(ctx context.Context, videoID string) (string, error) {
	page, err := f.get(ctx, f.baseURL+"/watch?v="+url.QueryEscape(videoID))
	if err != nil {
		return "", fmt.Errorf("watch page: %w", err)
	}

	tracks, err := CaptionTracks(page)
	if err != nil {
		return "", fmt.Errorf("video %s: %w", videoID, err)
	}

	track, ok := PickTrack(tracks, f.languages)
	if !ok {
		return "", fmt.Errorf("video %s has no captions: %w", videoID, domain.ErrTranscriptUnavailable)
	}
	logger.Debug("youtube: %s captions (%s) for %s", track.LanguageCode, kindLabel(track), videoID)

	trackURL := track.BaseURL
	if strings.HasPrefix(trackURL, "/") {
		trackURL = f.baseURL + trackURL
	}
	body, err := f.get(ctx, trackURL)
	if err != nil {
		return "", fmt.Errorf("caption track: %w", err)
	}

	text, err := ParseTimedText(body)
	if err != nil {
		return "", fmt.Errorf("video %s: %w", videoID, err)
	}
	return text, nil
}

func (f *Fetcher) get(ctx context.Context, target string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %w", resp.StatusCode, domain.ErrTranscriptUnavailable)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// CaptionTracks extracts the caption track list from a watch page.
func CaptionTracks(page []byte) ([]CaptionTrack, error) {
	i := bytes.Index(page, captionMarker)
	if i < 0 {
		return nil, fmt.Errorf("no caption tracks: %w", domain.ErrTranscriptUnavailable)
	}

	var tracks []CaptionTrack
	dec := json.NewDecoder(bytes.NewReader(page[i+len(captionMarker):]))
	if err := dec.Decode(&tracks); err != nil {
		return nil, fmt.Errorf("decode caption tracks: %w: %w", domain.ErrTranscriptUnavailable, err)
	}
	return tracks, nil
}

// PickTrack chooses a track by language preference, preferring manual
// captions over generated ones for the same language. With no language
// match, the first manual track wins, then the first track of any kind.
func PickTrack(tracks []CaptionTrack, languages []string) (CaptionTrack, bool) {
	if len(tracks) == 0 {
		return CaptionTrack{}, false
	}
	for _, lang := range languages {
		for _, generated := range []bool{false, true} {
			for _, t := range tracks {
				if strings.EqualFold(t.LanguageCode, lang) && t.generated() == generated {
					return t, true
				}
			}
		}
	}
	for _, t := range tracks {
		if !t.generated() {
			return t, true
		}
	}
	return tracks[0], true
}

// ParseTimedText converts caption XML into text with one caption per line.
func ParseTimedText(data []byte) (string, error) {
	var tt timedText
	if err := xml.Unmarshal(data, &tt); err != nil {
		return "", fmt.Errorf("parse captions: %w: %w", domain.ErrTranscriptUnavailable, err)
	}

	lines := make([]string, 0, len(tt.Texts))
	for _, t := range tt.Texts {
		line := strings.TrimSpace(html.UnescapeString(t.Body))
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return "", fmt.Errorf("empty captions: %w", domain.ErrTranscriptUnavailable)
	}
	return strings.Join(lines, "\n"), nil
}

func kindLabel(t CaptionTrack) string {
	if t.generated() {
		return "generated"
	}
	return "manual"
}
