package lint

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// linkHTTPClient is the shared HTTP client for external URL checks.
var linkHTTPClient = &http.Client{
	Timeout: 10 * time.Second,
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		if len(via) >= 10 {
			return fmt.Errorf("too many redirects")
		}
		return nil
	},
}

type extractedLink struct {
	target string
}

// extractLinksFromSource parses markdown bytes and extracts link/image
// destinations. Links inside code blocks are not part of the AST and are
// ignored.
func extractLinksFromSource(source []byte) []extractedLink {
	md := goldmark.New()
	reader := text.NewReader(source)
	doc := md.Parser().Parse(reader)

	var links []extractedLink
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Link:
			links = append(links, extractedLink{target: string(v.Destination)})
		case *ast.Image:
			links = append(links, extractedLink{target: string(v.Destination)})
		case *ast.AutoLink:
			target := string(v.Label(source))
			if len(v.Protocol) > 0 && !strings.HasPrefix(target, string(v.Protocol)) {
				target = string(v.Protocol) + target
			}
			links = append(links, extractedLink{target: target})
		}
		return ast.WalkContinue, nil
	})
	return links
}

// isExternalURL returns true for http:// and https:// URLs.
func isExternalURL(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}

// shouldSkipLink returns true for link schemes that should not be validated.
func shouldSkipLink(target string) bool {
	return strings.HasPrefix(target, "mailto:") || strings.HasPrefix(target, "mdc:")
}

// stripFragment removes the #fragment portion of a URL or path.
func stripFragment(target string) string {
	if idx := strings.Index(target, "#"); idx >= 0 {
		return target[:idx]
	}
	return target
}

// isWithinDir returns true if path is inside dir (or is dir itself).
func isWithinDir(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}

// checkExternalURLs validates unique external URLs with a goroutine pool of 5.
// Returns one finding per dead URL, attributed to the first file that used it.
func checkExternalURLs(ctx context.Context, urls map[string][]string) []Finding {
	if len(urls) == 0 {
		return nil
	}

	var mu sync.Mutex
	var findings []Finding
	sem := make(chan struct{}, 5)
	var wg sync.WaitGroup

	for u, sources := range urls {
		src := sources[0]
		wg.Add(1)
		go func(u, src string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if dead, reason := checkSingleURL(ctx, u); dead {
				mu.Lock()
				findings = append(findings, Finding{
					File:     src,
					Rule:     "link-dead-url",
					Message:  fmt.Sprintf("Dead external URL %s (%s)", u, reason),
					Severity: SeverityWarning,
				})
				mu.Unlock()
			}
		}(u, src)
	}

	wg.Wait()
	return findings
}

// skipSSRFCheck disables private-IP rejection for testing with httptest servers.
var skipSSRFCheck bool

// isPrivateIP returns true if the IP is loopback, private, or link-local.
func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast()
}

// checkSingleURL tries HTTP HEAD then falls back to GET.
func checkSingleURL(ctx context.Context, rawURL string) (dead bool, reason string) {
	if !skipSSRFCheck {
		// SSRF protection: reject URLs targeting private/loopback/link-local IPs.
		parsed, err := url.Parse(rawURL)
		if err != nil {
			return true, err.Error()
		}
		host := parsed.Hostname()
		ips, err := net.LookupHost(host)
		if err != nil {
			return true, fmt.Sprintf("DNS lookup failed: %v", err)
		}
		for _, ipStr := range ips {
			if ip := net.ParseIP(ipStr); ip != nil && isPrivateIP(ip) {
				return true, fmt.Sprintf("URL resolves to private/loopback address (%s)", ipStr)
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return true, err.Error()
	}
	req.Header.Set("User-Agent", "metadoc-link-checker/1.0")

	resp, err := linkHTTPClient.Do(req)
	if err == nil {
		_ = resp.Body.Close()
		if resp.StatusCode < 400 {
			return false, ""
		}
		// Some servers reject HEAD; fall back to GET.
		if resp.StatusCode == http.StatusMethodNotAllowed || resp.StatusCode == http.StatusForbidden {
			return checkSingleURLGet(ctx, rawURL)
		}
		return true, fmt.Sprintf("HTTP %d", resp.StatusCode)
	}
	return checkSingleURLGet(ctx, rawURL)
}

func checkSingleURLGet(ctx context.Context, rawURL string) (bool, string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return true, err.Error()
	}
	req.Header.Set("User-Agent", "metadoc-link-checker/1.0")

	resp, err := linkHTTPClient.Do(req)
	if err != nil {
		return true, err.Error()
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 400 {
		return true, fmt.Sprintf("HTTP %d", resp.StatusCode)
	}
	return false, ""
}

// unreachableDecisions does BFS from the index file following local links
// transitively, then reports decision files the index never reaches.
func unreachableDecisions(indexRel string, reports []*fileReport) []string {
	normLinks := make(map[string][]string, len(reports))
	for _, rep := range reports {
		normLinks[normalizePath(rep.relPath)] = rep.resolved
	}

	visited := make(map[string]bool)
	queue := []string{normalizePath(indexRel)}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		for _, t := range normLinks[current] {
			if !visited[t] {
				queue = append(queue, t)
			}
		}
	}

	var orphaned []string
	indexNorm := normalizePath(indexRel)
	for _, rep := range reports {
		norm := normalizePath(rep.relPath)
		if norm == indexNorm {
			continue
		}
		if !visited[norm] {
			orphaned = append(orphaned, rep.relPath)
		}
	}
	return orphaned
}

// normalizePath normalizes a path for comparison (case-insensitive on Windows).
func normalizePath(p string) string {
	p = filepath.ToSlash(p)
	if runtime.GOOS == "windows" {
		p = strings.ToLower(p)
	}
	return p
}

// appendUnique appends item to slice only if not already present.
func appendUnique(slice []string, item string) []string {
	for _, s := range slice {
		if s == item {
			return slice
		}
	}
	return append(slice, item)
}
