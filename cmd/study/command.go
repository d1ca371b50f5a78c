package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"concept_flash/internal/model"
)

// command は入力1行を解析した結果
type command struct {
	name   string
	args   []string
	fields map[string]string
}

var aliases = map[string]string{
	"n":        "next",
	"p":        "previous",
	"prev":     "previous",
	"f":        "flip",
	"s":        "shuffle",
	"r":        "reset",
	"retry":    "load",
	"reload":   "load",
	"ls":       "list",
	"rm":       "delete",
	"q":        "quit",
	"exit":     "quit",
	"?":        "help",
	"h":        "help",
	"":         "show",
	"show":     "show",
	"next":     "next",
	"previous": "previous",
	"flip":     "flip",
	"shuffle":  "shuffle",
	"reset":    "reset",
	"swipe":    "swipe",
	"load":     "load",
	"list":     "list",
	"add":      "add",
	"edit":     "edit",
	"delete":   "delete",
	"quit":     "quit",
	"help":     "help",
}

// parseCommand は `edit 3 title="Big O" difficulty=advanced` のような行を解析します
func parseCommand(line string) (command, error) {
	tokens, err := tokenize(line)
	if err != nil {
		return command{}, err
	}
	var head string
	if len(tokens) > 0 {
		head = strings.ToLower(tokens[0])
		tokens = tokens[1:]
	}
	name, ok := aliases[head]
	if !ok {
		return command{}, fmt.Errorf("unknown command %q (type 'help')", head)
	}

	cmd := command{name: name, fields: map[string]string{}}
	for _, tok := range tokens {
		if key, value, found := strings.Cut(tok, "="); found && (name == "add" || name == "edit") {
			cmd.fields[strings.ToLower(key)] = value
			continue
		}
		cmd.args = append(cmd.args, tok)
	}
	return cmd, nil
}

// tokenize は空白で区切り、ダブルクォート内の空白は保持します
func tokenize(line string) ([]string, error) {
	var (
		tokens  []string
		current strings.Builder
		inQuote bool
		started bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case unicode.IsSpace(r) && !inQuote:
			if started {
				tokens = append(tokens, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated quote in %q", line)
	}
	if started {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}

// conceptInput は key=value の組からコンセプトの入力値を作ります
func conceptInput(fields map[string]string) (model.ConceptInput, error) {
	var in model.ConceptInput
	for key, value := range fields {
		v := value
		switch key {
		case "title":
			in.Title = v
		case "description", "desc":
			in.Description = v
		case "example", "example_text":
			in.ExampleText = &v
		case "image", "image_url":
			in.ImageURL = &v
		case "category":
			in.Category = v
		case "difficulty", "difficulty_level", "level":
			d := model.DifficultyLevel(strings.ToLower(v))
			if !d.Valid() {
				return model.ConceptInput{}, fmt.Errorf("difficulty must be one of beginner, intermediate, advanced")
			}
			in.DifficultyLevel = d
		default:
			return model.ConceptInput{}, fmt.Errorf("unknown field %q", key)
		}
	}
	return in, nil
}

func parseID(args []string) (uint, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected a concept id")
	}
	id, err := strconv.ParseUint(args[0], 10, 0)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid concept id %q", args[0])
	}
	return uint(id), nil
}
