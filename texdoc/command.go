package texdoc

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	// ErrUnbalancedBraces is returned when a closing brace has no opening one.
	ErrUnbalancedBraces = errors.New("unbalanced braces")

	// ErrUnmatchedEnvironment is returned when \begin{name} or \end{name} is
	// missing.
	ErrUnmatchedEnvironment = errors.New("unmatched environment")

	// ErrNestedEnvironment is returned when an environment contains another
	// environment of the same name. First-occurrence matching cannot tell
	// which \end belongs to which \begin, so the content is not returned.
	ErrNestedEnvironment = errors.New("nested environment of the same name")
)

// SyntaxError is a fatal parse error located at a source line.
type SyntaxError struct {
	Line int
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// ParseCommand returns the content of the outermost braces of a command
// such as \section{...}. With strip set, nested braces and backslash command
// names are dropped while the text they wrap is kept; otherwise they are kept
// verbatim. '~' becomes a space, runs of spaces collapse, and trailing spaces
// and commas are trimmed.
func ParseCommand(s string, strip bool) (string, error) {
	depth := 0
	isCommand := false
	nameLen := 0
	var content []rune

scan:
	for _, c := range s {
		switch c {
		case '{':
			depth++
			isCommand = false
			if strip || depth == 1 {
				continue
			}
		case '}':
			if depth == 0 {
				return "", ErrUnbalancedBraces
			}
			depth--
			if depth == 0 {
				break scan
			}
			isCommand = false
			if strip {
				continue
			}
		case ' ':
			isCommand = false
		case '\\':
			if strip && isCommand && nameLen == 0 {
				// \\ is a line break
				isCommand = false
				c = ' '
				break
			}
			isCommand = true
			nameLen = 0
			if strip || depth == 0 {
				continue
			}
		default:
			if isCommand && !unicode.IsLetter(c) {
				// A control symbol such as \, or \% is one character long. Spacing
				// symbols become a space.
				isCommand = false
				if nameLen == 0 && strip {
					switch {
					case strings.ContainsRune(`,;:!`, c):
						c = ' '
					case !strings.ContainsRune(`%$&#_`, c):
						continue
					}
				}
			} else if isCommand {
				nameLen++
			}
		}

		if depth >= 1 && !(strip && isCommand) {
			if c == '~' {
				c = ' '
			}
			if c == ' ' && len(content) > 0 && content[len(content)-1] == ' ' {
				continue
			}
			if c == ' ' && len(content) == 0 {
				continue
			}
			content = append(content, c)
		}
	}

	return strings.TrimRight(string(content), " ,"), nil
}

var envName = regexp.MustCompile(`\\begin\{([A-Za-z*]+)\}`)

// EnvironmentName returns the name of the first \begin{name} in s, or "".
func EnvironmentName(s string) string {
	m := envName.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}

// ExtractEnvironment returns the text strictly between the first
// \begin{name} and the first \end{name}, where name comes from the first
// \begin in s.
func ExtractEnvironment(s string) (string, error) {
	name := EnvironmentName(s)
	if name == "" {
		return "", fmt.Errorf("no environment in %q: %w", preview(s), ErrUnmatchedEnvironment)
	}

	begin := `\begin{` + name + `}`
	end := `\end{` + name + `}`
	start := strings.Index(s, begin)
	stop := strings.Index(s, end)
	if start < 0 || stop < 0 || stop < start {
		return "", fmt.Errorf("environment %q: %w", name, ErrUnmatchedEnvironment)
	}

	body := s[start+len(begin) : stop]
	if strings.Contains(body, begin) {
		return "", fmt.Errorf("environment %q: %w", name, ErrNestedEnvironment)
	}
	return body, nil
}

// findUnescapedPercent returns the index of the first '%' not escaped by an
// odd number of backslashes, or -1.
func findUnescapedPercent(line string) int {
	i := 0
	for i < len(line) {
		idx := strings.IndexByte(line[i:], '%')
		if idx == -1 {
			return -1
		}
		pos := i + idx

		backslashes := 0
		for j := pos - 1; j >= 0 && line[j] == '\\'; j-- {
			backslashes++
		}
		if backslashes%2 == 1 {
			i = pos + 1
			continue
		}
		return pos
	}
	return -1
}

func preview(s string) string {
	r := []rune(s)
	if len(r) > 40 {
		return string(r[:40]) + "..."
	}
	return s
}
