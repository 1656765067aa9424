package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/seriesgenius/seriesgenius/catalog"
	"github.com/seriesgenius/seriesgenius/color"
	"github.com/seriesgenius/seriesgenius/icon"
	"github.com/seriesgenius/seriesgenius/playback"
	"github.com/seriesgenius/seriesgenius/strategy"
	"github.com/seriesgenius/seriesgenius/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringP("episode", "e", "", "Episode id to play, the first episode when omitted")
	playCmd.Flags().StringP("link", "l", "", "Play the content selected by a share link")
	playCmd.MarkFlagsMutuallyExclusive("episode", "link")

	playCmd.SetOut(os.Stdout)
}

// playCmd plays a single catalog entry without the TUI.
var playCmd = &cobra.Command{
	Use:   "play [id]",
	Short: "Play a catalog entry, prompting for it when no id is given",
	Args:  cobra.MaximumNArgs(1),
	ValidArgsFunction: completionContentIDs,
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp()
		handleErr(err)
		defer app.close()

		var contentID, episodeID string
		switch link := lo.Must(cmd.Flags().GetString("link")); {
		case link != "":
			handleErr(app.follow(link))
			selection, _ := app.codec.Resolve(app.catalog)
			contentID, episodeID = selection.ContentID, selection.EpisodeID
		case len(args) == 1:
			contentID = args[0]
			episodeID = lo.Must(cmd.Flags().GetString("episode"))
		default:
			contentID, episodeID = prompt(app.catalog)
		}

		item, err := app.catalog.Item(contentID)
		handleErr(err)

		if item.IsEpisodic() && episodeID == "" && len(args) == 0 {
			episodeID = promptEpisode(item)
		}

		CheckDependencies()
		handleErr(start(app.engine, item, episodeID))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		handleErr(wait(ctx, cmd, app))
	},
}

func prompt(c *catalog.Catalog) (contentID, episodeID string) {
	items := c.Items()
	if len(items) == 0 {
		handleErr(errors.New("catalog is empty"))
	}

	var index int
	handleErr(survey.AskOne(&survey.Select{
		Message: "What do you want to watch?",
		Options: lo.Map(items, func(item *catalog.Item, _ int) string {
			return item.Title
		}),
		PageSize: 15,
	}, &index))

	item := items[index]
	if item.IsEpisodic() {
		episodeID = promptEpisode(item)
	}

	return item.ID, episodeID
}

func promptEpisode(item *catalog.Item) string {
	if len(item.Episodes) <= 1 {
		return ""
	}

	var index int
	handleErr(survey.AskOne(&survey.Select{
		Message: "Which episode?",
		Options: lo.Map(item.Episodes, func(episode *catalog.Episode, _ int) string {
			return episode.String()
		}),
		PageSize: 15,
	}, &index))

	return item.Episodes[index].ID
}

func start(engine *playback.Engine, item *catalog.Item, episodeID string) error {
	if err := engine.OpenContent(item.ID); err != nil {
		return err
	}

	if item.IsEpisodic() && episodeID != "" {
		return engine.SelectEpisode(episodeID)
	}

	return engine.RequestPlay()
}

// wait blocks until the player exits, playback fails or ctx is done.
// Embeds are handed to another application, so there is nothing to wait for.
func wait(ctx context.Context, cmd *cobra.Command, a *app) error {
	failed := make(chan string, 1)
	unsubscribe := a.engine.Subscribe(func(snapshot playback.Snapshot) {
		if snapshot.State == playback.Error {
			select {
			case failed <- snapshot.Message:
			default:
			}
		}
	})
	defer unsubscribe()

	snapshot := a.engine.Snapshot()
	if snapshot.State == playback.Error {
		return errors.New(snapshot.Message)
	}

	title := snapshot.Target.OrEmpty().Title
	if snapshot.Strategy == strategy.Iframe {
		cmd.Printf("%s %s opened in the embed player\n", style.Fg(color.Green)(icon.Get(icon.Success)), title)
		return nil
	}

	cmd.Printf("%s %s\n", style.Fg(color.Purple)(icon.Get(icon.Play)), title)

	running, ok := a.element.(interface{ IsRunning() bool })
	if !ok {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	var started bool
	for {
		select {
		case <-ctx.Done():
			return nil
		case message := <-failed:
			return errors.New(message)
		case <-ticker.C:
			switch {
			case running.IsRunning():
				started = true
			case started:
				return nil
			}
		}
	}
}
