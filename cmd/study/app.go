package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"concept_flash/internal/client"
	"concept_flash/internal/config"
	"concept_flash/internal/gesture"
	"concept_flash/internal/model"
	"concept_flash/internal/study"
)

const helpText = `commands:
  n, next            next card
  p, prev            previous card
  f, flip            flip the current card
  s, shuffle         shuffle the deck and start over
  r, reset           start over without shuffling
  swipe <x1> <x2>    drag the card from x1 to x2
  load, retry        fetch concepts again
  list               list all concepts
  add key=value...   create (title, description, example, image, category, difficulty)
  edit <id> k=v...   update only the given fields
  delete <id>        delete a concept
  q, quit            exit`

// app はプロセス起動時に組み立てるアプリケーションコンテキスト
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	api     client.ConceptAPI
	session *study.Session
	swipe   *gesture.Translator
	out     io.Writer
}

func newApp(cfg *config.Config, logger *slog.Logger, api client.ConceptAPI, out io.Writer, opts ...study.Option) *app {
	opts = append([]study.Option{study.WithLogger(logger)}, opts...)
	session := study.NewSession(api, opts...)
	return &app{
		cfg:     cfg,
		logger:  logger,
		api:     api,
		session: session,
		swipe: gesture.NewTranslator(session,
			gesture.WithThreshold(cfg.Study.SwipeThreshold),
			gesture.WithLogger(logger)),
		out: out,
	}
}

// run は入力が尽きるか quit まで1行ずつコマンドを処理します
func (a *app) run(ctx context.Context, in io.Reader) error {
	a.load(ctx)
	a.render()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(a.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(a.out)
			return scanner.Err()
		}
		cmd, err := parseCommand(scanner.Text())
		if err != nil {
			fmt.Fprintln(a.out, err)
			continue
		}
		if cmd.name == "quit" {
			return nil
		}
		if err := a.execute(ctx, cmd); err != nil {
			fmt.Fprintln(a.out, "error:", err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (a *app) execute(ctx context.Context, cmd command) error {
	switch cmd.name {
	case "show":
		a.render()
	case "next":
		a.session.Next()
		a.render()
	case "previous":
		a.session.Previous()
		a.render()
	case "flip":
		a.session.Flip()
		a.render()
	case "shuffle":
		a.session.Shuffle()
		a.render()
	case "reset":
		a.session.Reset()
		a.render()
	case "swipe":
		if len(cmd.args) == 0 {
			return errors.New("usage: swipe <startX> <endX>")
		}
		startX, endX, err := gesture.ParseDrag(strings.Join(cmd.args, " "))
		if err != nil {
			return err
		}
		res := a.swipe.Swipe(startX, endX)
		if res.Action == gesture.ActionNone {
			fmt.Fprintln(a.out, "(snapped back)")
		}
		a.render()
	case "load":
		a.load(ctx)
		a.render()
	case "list":
		return a.list(ctx)
	case "add":
		return a.add(ctx, cmd)
	case "edit":
		return a.edit(ctx, cmd)
	case "delete":
		return a.remove(ctx, cmd)
	case "help":
		fmt.Fprintln(a.out, helpText)
	}
	return nil
}

func (a *app) load(ctx context.Context) {
	fmt.Fprintln(a.out, "Loading concepts...")
	if _, err := a.session.Load(ctx); err != nil {
		if errors.Is(err, study.ErrSuperseded) {
			return
		}
		fmt.Fprintf(a.out, "Error loading concepts: %v\n(type 'retry' to try again)\n", err)
	}
}

func (a *app) render() {
	st := a.session.Snapshot()
	if st.Loading {
		fmt.Fprintln(a.out, "Loading concepts...")
		return
	}
	current, ok := st.Current()
	if !ok {
		fmt.Fprintln(a.out, "No concepts yet. Use 'add' to create one.")
		return
	}

	fmt.Fprintf(a.out, "\nCard %d of %d  [%s / %s]\n", st.Position+1, len(st.Deck), current.CategoryLabel(), current.DifficultyLevel.Label())
	if !st.Flipped {
		fmt.Fprintf(a.out, "  %s\n", current.Title)
		fmt.Fprintln(a.out, "  (f to reveal)")
	} else {
		fmt.Fprintf(a.out, "  %s\n", current.Description)
		if ex := current.Example(); ex != "" {
			fmt.Fprintf(a.out, "  Example: %s\n", ex)
		}
		if img := current.Image(); img != "" {
			fmt.Fprintf(a.out, "  Image: %s\n", img)
		}
	}
	if st.HasProgress {
		fmt.Fprintf(a.out, "Progress: %.0f%%  (%d / %d cards)\n", st.Progress, len(st.Visited), len(st.Deck))
	}
}

func (a *app) list(ctx context.Context) error {
	concepts, err := a.api.List(ctx)
	if err != nil {
		return err
	}
	if len(concepts) == 0 {
		fmt.Fprintln(a.out, "No concepts yet.")
		return nil
	}
	for _, c := range concepts {
		fmt.Fprintf(a.out, "%4d  %-30s  %-12s  %s\n", c.ID, c.Title, c.CategoryLabel(), c.DifficultyLevel.Label())
	}
	return nil
}

func (a *app) add(ctx context.Context, cmd command) error {
	in, err := conceptInput(cmd.fields)
	if err != nil {
		return err
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return errors.New("title and description are required")
	}
	if in.Category == "" {
		in.Category = model.DefaultCategory
	}
	if in.DifficultyLevel == "" {
		in.DifficultyLevel = model.DefaultDifficulty
	}

	created, err := a.api.Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Concept created (id %d)\n", created.ID)
	a.load(ctx)
	return nil
}

func (a *app) edit(ctx context.Context, cmd command) error {
	id, err := parseID(cmd.args)
	if err != nil {
		return err
	}
	in, err := conceptInput(cmd.fields)
	if err != nil {
		return err
	}

	before, err := a.api.Get(ctx, id)
	if err != nil {
		return err
	}
	patch := model.PatchFrom(*before, in)
	if patch.Empty() {
		fmt.Fprintln(a.out, "Nothing to update.")
		return nil
	}

	if _, err := a.api.Update(ctx, id, patch); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Concept updated")
	a.load(ctx)
	return nil
}

func (a *app) remove(ctx context.Context, cmd command) error {
	id, err := parseID(cmd.args)
	if err != nil {
		return err
	}
	if err := a.api.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Concept deleted")
	a.load(ctx)
	return nil
}
