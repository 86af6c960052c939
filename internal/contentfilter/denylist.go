package contentfilter

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DefaultDenylist is the built-in vocabulary for the inappropriate-language
// rule: profanity, violent/self-harm terms, drug and alcohol terms, and
// insults. The matching contract (case-insensitive whole words) lives in the
// filter; this list is content policy and can be replaced via configuration.
var DefaultDenylist = []string{
	"fuck", "shit", "damn", "bitch", "asshole", "bastard", "crap", "piss",
	"whore", "slut", "retard", "faggot", "nigger", "cunt", "cock", "pussy",
	"tits", "ass", "sex", "porn", "nude", "naked",
	"kill", "hell", "suicide", "murder", "rape",
	"drug", "cocaine", "heroin", "marijuana", "weed",
	"alcohol", "beer", "wine", "vodka", "whiskey", "drunk", "high",
	"stupid", "idiot", "moron", "dumb", "loser",
	"hate", "racist", "nazi",
	"chudi", "chudai", "chod", "chud",
}

// LoadDenylist reads a newline-delimited word list. Blank lines and lines
// starting with '#' are skipped; words are lower-cased.
func LoadDenylist(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening denylist: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.ToLower(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading denylist: %w", err)
	}
	return words, nil
}
