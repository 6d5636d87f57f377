package ui

import (
	"encoding/base64"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
)

func overlay(base, top string) string {
	bLines := strings.Split(base, "\n")
	oLines := strings.Split(top, "\n")
	maxLen := len(bLines)
	if len(oLines) > maxLen {
		maxLen = len(oLines)
	}
	for len(bLines) < maxLen {
		bLines = append(bLines, "")
	}
	for len(oLines) < maxLen {
		oLines = append(oLines, "")
	}
	out := make([]string, maxLen)
	for i := 0; i < maxLen; i++ {
		// whitespace-only overlay lines are transparent
		if strings.TrimSpace(oLines[i]) != "" {
			out[i] = oLines[i]
		} else {
			out[i] = bLines[i]
		}
	}
	return strings.Join(out, "\n")
}

// copyToClipboard copies text using OSC52, which works in most modern
// terminals even over ssh.
func copyToClipboard(s string) {
	s = stripANSI(s)
	enc := base64.StdEncoding.EncodeToString([]byte(s))
	payload := fmt.Sprintf("\x1b]52;c;%s\x07", enc)
	// write to /dev/tty to avoid clobbering the app's stdout buffer
	if f, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0); err == nil {
		defer f.Close()
		_, _ = f.WriteString(payload)
		return
	}
	fmt.Fprint(os.Stdout, payload)
}

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

// tagDocURL maps a tag group to its page in the exiftool tag name
// documentation. The Exif group's page is capitalized differently from
// the group name itself.
func tagDocURL(group string) string {
	if group == "Exif" {
		return "https://exiftool.org/TagNames/EXIF.html"
	}
	return fmt.Sprintf("https://exiftool.org/TagNames/%s.html", group)
}

func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}

// cutString shifts a cell's text left by xoff columns, marking the cut
// edge with dots, and truncates it to width with a trailing ellipsis.
func cutString(s string, width, xoff int) string {
	if width <= 0 {
		return ""
	}
	rs := []rune(s)
	if xoff > 0 {
		if xoff >= len(rs) {
			if len(rs) == 0 {
				return ""
			}
			if width < 3 {
				return strings.Repeat(".", width)
			}
			return "..."
		}
		cut := xoff + 3
		if cut > len(rs) {
			cut = len(rs)
		}
		rs = append([]rune("..."), rs[cut:]...)
	}
	if len(rs) > width {
		if width <= 3 {
			return string(rs[:width])
		}
		rs = append(rs[:width-3], []rune("...")...)
	}
	return string(rs)
}
