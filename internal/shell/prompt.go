package shell

import (
	"fmt"
	"strings"

	"github.com/elk-language/go-prompt"
	istrings "github.com/elk-language/go-prompt/strings"

	"github.com/quocvuong92/cmdtree/internal/complete"
	"github.com/quocvuong92/cmdtree/internal/constants"
)

// runPrompt reads lines with go-prompt until quit, Ctrl+C or Ctrl+D on an
// empty line.
func (s *Shell) runPrompt() {
	p := prompt.New(
		s.executor,
		prompt.WithCompleter(s.completer),
		prompt.WithPrefix(s.cfg.Prompt),
		prompt.WithTitle(constants.AppName),
		prompt.WithHistory(s.history.Lines()),
		prompt.WithPrefixTextColor(prompt.Green),
		prompt.WithSuggestionBGColor(prompt.DarkBlue),
		prompt.WithSuggestionTextColor(prompt.White),
		prompt.WithSelectedSuggestionBGColor(prompt.Cyan),
		prompt.WithSelectedSuggestionTextColor(prompt.Black),
		prompt.WithDescriptionBGColor(prompt.DarkBlue),
		prompt.WithDescriptionTextColor(prompt.LightGray),
		prompt.WithSelectedDescriptionBGColor(prompt.Cyan),
		prompt.WithSelectedDescriptionTextColor(prompt.Black),
		prompt.WithMaxSuggestion(15),
		prompt.WithCompletionOnDown(),
		prompt.WithExitChecker(func(in string, breakline bool) bool {
			return s.quit
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlC,
			Fn: func(p *prompt.Prompt) bool {
				fmt.Fprintln(s.out)
				s.Quit()
				return false
			},
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlD,
			Fn: func(p *prompt.Prompt) bool {
				if p.Buffer.Text() == "" {
					fmt.Fprintln(s.out)
					s.Quit()
				}
				return false
			},
		}),
	)

	p.Run()
}

// executor runs each line go-prompt hands over.
func (s *Shell) executor(input string) {
	if s.quit {
		return
	}
	s.RunLine(input)
	if s.Pending() {
		fmt.Fprint(s.out, "... ")
	}
}

// completer offers keyword completions for the word before the cursor, or
// the next argument hint when no keyword applies.
func (s *Shell) completer(d prompt.Document) ([]prompt.Suggest, istrings.RuneNumber, istrings.RuneNumber) {
	endIndex := d.CurrentRuneIndex()
	suggestions, replace := s.suggest(d.TextBeforeCursor())
	return suggestions, endIndex - istrings.RuneNumber(replace), endIndex
}

// suggest computes suggestions for text and the number of runes before
// the cursor they replace.
func (s *Shell) suggest(text string) ([]prompt.Suggest, int) {
	if strings.TrimSpace(text) == "" {
		return []prompt.Suggest{}, 0
	}
	delims := s.dispatcher.Delimiters()

	res, ok := complete.Complete(s.root, text, delims)
	if ok {
		suggestions := make([]prompt.Suggest, 0, len(res.Matches))
		for _, kw := range res.Matches {
			desc := ""
			if n := res.Node.FindByKeyword(kw); n != nil {
				desc = n.Description()
			}
			suggestions = append(suggestions, prompt.Suggest{Text: kw, Description: desc})
		}
		return suggestions, int(istrings.RuneCountInString(res.Substring))
	}

	// Hints only show up once the current word is finished.
	if res.Substring == "" {
		if hint, ok := complete.Hint(s.root, text, delims); ok {
			return []prompt.Suggest{{Text: hint, Description: "argument"}}, 0
		}
	}
	return []prompt.Suggest{}, 0
}
