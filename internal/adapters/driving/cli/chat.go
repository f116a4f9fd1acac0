package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driving"
)

const progressBarWidth = 20

var chatCmd = &cobra.Command{
	Use:   "chat [section]",
	Short: "Add a resume section by chatting with the AI",
	Long: `Start a line-based chat that collects one resume section.

Sections: experience, project, education, skills, achievements.
Without an argument you are asked to pick one.

Commands inside the chat:
  /submit    Finish the section and add it to the resume
  /progress  Show which fields have been collected
  /help      Show these commands
  /quit      Leave without adding anything`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

var chatLastCmd = &cobra.Command{
	Use:   "last [section]",
	Short: "Show the last submitted result for a section",
	Args:  cobra.ExactArgs(1),
	RunE:  runChatLast,
}

func init() {
	chatCmd.AddCommand(chatLastCmd)
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if chatService == nil || resumeService == nil {
		return errors.New("chat service not configured")
	}

	ctx := cmd.Context()
	reader := inputReader(cmd)

	var section domain.SectionKind
	if len(args) == 1 {
		s, err := domain.ParseSection(args[0])
		if err != nil {
			return err
		}
		section = s
	} else {
		section = pickSection(cmd, reader)
	}

	wf, err := chatService.Begin(ctx, section)
	if err != nil {
		return friendly(err)
	}

	cmd.Printf("Starting %s chat...\n", strings.ToLower(section.Title()))
	if err := wf.Start(ctx); err != nil {
		return friendly(fmt.Errorf("starting chat: %w", err))
	}
	printReply(cmd, wf.Snapshot())

	for {
		cmd.Print("> ")
		line, eof := readLineEOF(reader)
		if eof {
			cmd.Println()
			cmd.Println("Chat abandoned; nothing was added.")
			return nil
		}

		switch line {
		case "":
			continue
		case "/quit", "/q":
			cmd.Println("Chat abandoned; nothing was added.")
			return nil
		case "/help":
			cmd.Println("Commands: /submit /progress /help /quit")
		case "/progress":
			printProgress(cmd, wf.Snapshot().Progress)
		case "/submit":
			done, err := submitChat(cmd, wf)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		default:
			if err := wf.Send(ctx, line); err != nil {
				cmd.Printf("Error: %v\n", friendly(err))
				if errors.Is(err, domain.ErrSectionComplete) {
					cmd.Println("Type /submit to add this section to your resume.")
				}
				continue
			}
			printReply(cmd, wf.Snapshot())
		}
	}
}

// submitChat submits the workflow and merges the result into the resume.
// It returns false when the user may keep chatting.
func submitChat(cmd *cobra.Command, wf driving.ChatWorkflow) (bool, error) {
	ctx := cmd.Context()

	cmd.Println("Submitting...")
	entry, err := wf.Submit(ctx)
	if err != nil {
		cmd.Printf("Error: %v\n", friendly(err))
		cmd.Println("You can keep chatting or try /submit again.")
		return false, nil
	}

	doc, err := resumeService.Apply(ctx, entry)
	if err != nil {
		return true, fmt.Errorf("adding %s to resume: %w", entry.Section(), err)
	}

	cmd.Printf("Added to %s (%d total).\n", entry.Section().Heading(), doc.Len(entry.Section()))
	return true, nil
}

func runChatLast(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	section, err := domain.ParseSection(args[0])
	if err != nil {
		return err
	}

	result, err := sessionService.LastResult(cmd.Context(), section)
	if errors.Is(err, domain.ErrNotFound) {
		cmd.Printf("No %s submitted yet.\n", strings.ToLower(section.Title()))
		return nil
	}
	if err != nil {
		return friendly(err)
	}

	data, err := json.MarshalIndent(result.Entry, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	cmd.Printf("Section: %s\n", section.Heading())
	cmd.Printf("Chat:    %s\n", result.ChatID)
	cmd.Println(string(data))
	return nil
}

func pickSection(cmd *cobra.Command, reader *bufio.Reader) domain.SectionKind {
	sections := domain.AllSections()
	cmd.Println("Which section do you want to add?")
	for i, s := range sections {
		cmd.Printf("  %d. %s\n", i+1, s.Title())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(sections), 1)
	return sections[idx-1]
}

func printReply(cmd *cobra.Command, state domain.ChatState) {
	if msg, ok := state.Transcript.Last(); ok && msg.Role == domain.RoleAI {
		cmd.Printf("\nAI: %s\n\n", msg.Content)
	}
	printProgress(cmd, state.Progress)
	if state.Progress.IsComplete {
		cmd.Println("All fields collected. Type /submit to add this section.")
	}
}

func printProgress(cmd *cobra.Command, p domain.Progress) {
	cmd.Println(progressLine(p))
}

// progressLine renders e.g. "[##########----------]  50%  ✓ category name  ✗ skills".
func progressLine(p domain.Progress) string {
	pct := p.ClampedPercentage()
	filled := int(pct / 100 * progressBarWidth)

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(strings.Repeat("#", filled))
	b.WriteString(strings.Repeat("-", progressBarWidth-filled))
	fmt.Fprintf(&b, "] %3.0f%%", pct)
	for _, f := range p.Status {
		mark := "✗"
		if f.Done {
			mark = "✓"
		}
		fmt.Fprintf(&b, "  %s %s", mark, f.Label())
	}
	return b.String()
}
