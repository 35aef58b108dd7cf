package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/amankumarsingh77/yt-transcriber/internal/transcript"
	"github.com/amankumarsingh77/yt-transcriber/pkg/logger"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

const (
	DefaultWatchURL  = "https://www.youtube.com/watch?v="
	maxWatchPageSize = 8 << 20
	maxCaptionSize   = 4 << 20
	userAgent        = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	playerMarker     = "ytInitialPlayerResponse ="
)

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

type playerResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions struct {
		Renderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type timedText struct {
	Texts []string `xml:"text"`
	Paras []struct {
		Text  string   `xml:",chardata"`
		Spans []string `xml:"s"`
	} `xml:"body>p"`
}

type CaptionFetcher struct {
	httpClient *http.Client
	watchURL   string
	languages  []string
	logger     logger.Logger
}

func NewCaptionFetcher(httpClient *http.Client, watchURL string, languages []string, logger logger.Logger) *CaptionFetcher {
	if watchURL == "" {
		watchURL = DefaultWatchURL
	}
	return &CaptionFetcher{
		httpClient: httpClient,
		watchURL:   watchURL,
		languages:  languages,
		logger:     logger,
	}
}

// Fetch returns the decoded caption text joined by single spaces. Every failure, including an
// empty track, wraps transcript.ErrCaptionsUnavailable.
func (f *CaptionFetcher) Fetch(ctx context.Context, videoID string) (string, error) {
	tracks, err := f.captionTracks(ctx, videoID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", transcript.ErrCaptionsUnavailable, err)
	}
	track, ok := pickBestTrack(tracks, f.languages)
	if !ok {
		return "", fmt.Errorf("%w: no usable caption track", transcript.ErrCaptionsUnavailable)
	}
	fragments, err := f.timedText(ctx, track.BaseURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", transcript.ErrCaptionsUnavailable, err)
	}
	text := JoinCaptions(fragments)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty caption track", transcript.ErrCaptionsUnavailable)
	}
	return text, nil
}

func (f *CaptionFetcher) captionTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	page, err := f.get(ctx, f.watchURL+videoID, maxWatchPageSize)
	if err != nil {
		return nil, errors.Wrap(err, "watch page")
	}
	raw, err := findPlayerResponse(page)
	if err != nil {
		return nil, err
	}
	var pr playerResponse
	if err = json.Unmarshal([]byte(raw), &pr); err != nil {
		return nil, errors.Wrap(err, "decode player response")
	}
	tracks := pr.Captions.Renderer.CaptionTracks
	if len(tracks) == 0 {
		if pr.PlayabilityStatus.Reason != "" {
			return nil, fmt.Errorf("no caption tracks (%s)", pr.PlayabilityStatus.Reason)
		}
		return nil, errors.New("no caption tracks")
	}
	return tracks, nil
}

func (f *CaptionFetcher) timedText(ctx context.Context, baseURL string) ([]string, error) {
	body, err := f.get(ctx, baseURL, maxCaptionSize)
	if err != nil {
		return nil, errors.Wrap(err, "timedtext")
	}
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.Strict = false
	var tt timedText
	if err = dec.Decode(&tt); err != nil {
		return nil, errors.Wrap(err, "decode timedtext")
	}
	fragments := tt.Texts
	for _, p := range tt.Paras {
		if len(p.Spans) > 0 {
			fragments = append(fragments, strings.Join(p.Spans, ""))
			continue
		}
		fragments = append(fragments, p.Text)
	}
	return fragments, nil
}

func (f *CaptionFetcher) get(ctx context.Context, url string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cookie", "CONSENT=YES+1")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, limit))
}

// findPlayerResponse walks the page's script elements and returns the JSON object assigned
// to ytInitialPlayerResponse.
func findPlayerResponse(page []byte) (string, error) {
	z := html.NewTokenizer(bytes.NewReader(page))
	inScript := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return "", errors.New("player response not found")
			}
			return "", z.Err()
		case html.StartTagToken:
			name, _ := z.TagName()
			inScript = string(name) == "script"
		case html.EndTagToken:
			inScript = false
		case html.TextToken:
			if !inScript {
				continue
			}
			text := string(z.Text())
			idx := strings.Index(text, playerMarker)
			if idx < 0 {
				continue
			}
			rest := strings.TrimLeft(text[idx+len(playerMarker):], " \t")
			if !strings.HasPrefix(rest, "{") {
				continue
			}
			if obj, ok := extractJSONObject(rest); ok {
				return obj, nil
			}
		}
	}
}

// extractJSONObject returns the balanced {...} prefix of s, honouring string literals.
func extractJSONObject(s string) (string, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return "", false
}

// pickBestTrack prefers manual tracks over auto-generated ones and earlier languages over later
// ones. Tracks that need a proof-of-origin token are skipped.
func pickBestTrack(tracks []captionTrack, languages []string) (captionTrack, bool) {
	var usable []captionTrack
	for _, t := range tracks {
		if t.BaseURL == "" || strings.Contains(t.BaseURL, "&exp=xpe") {
			continue
		}
		usable = append(usable, t)
	}
	if len(usable) == 0 {
		return captionTrack{}, false
	}
	for _, asr := range []bool{false, true} {
		for _, lang := range languages {
			for _, t := range usable {
				if (t.Kind == "asr") == asr && strings.HasPrefix(t.LanguageCode, lang) {
					return t, true
				}
			}
		}
	}
	for _, t := range usable {
		if t.Kind != "asr" {
			return t, true
		}
	}
	return usable[0], true
}

var captionEntities = []struct{ from, to string }{
	{"&amp;", "&"},
	{"&#39;", "'"},
	{"&quot;", `"`},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&nbsp;", " "},
}

// DecodeCaption replaces the HTML entities caption tracks are known to carry. &amp; is decoded
// first so double-escaped sequences such as &amp;#39; resolve fully.
func DecodeCaption(s string) string {
	for _, e := range captionEntities {
		s = strings.ReplaceAll(s, e.from, e.to)
	}
	return s
}

func JoinCaptions(fragments []string) string {
	decoded := make([]string, len(fragments))
	for i, f := range fragments {
		decoded[i] = DecodeCaption(f)
	}
	return strings.Join(decoded, " ")
}
