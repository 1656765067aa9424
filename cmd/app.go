package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/seriesgenius/seriesgenius/catalog"
	"github.com/seriesgenius/seriesgenius/deeplink"
	"github.com/seriesgenius/seriesgenius/hls"
	"github.com/seriesgenius/seriesgenius/insight"
	"github.com/seriesgenius/seriesgenius/key"
	"github.com/seriesgenius/seriesgenius/log"
	"github.com/seriesgenius/seriesgenius/playback"
	"github.com/seriesgenius/seriesgenius/player"
	"github.com/seriesgenius/seriesgenius/share"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app bundles the collaborators every playing command needs.
type app struct {
	catalog *catalog.Catalog
	codec   *deeplink.Codec
	engine  *playback.Engine
	element player.Element
}

func loadCatalog() (*catalog.Catalog, error) {
	c, err := catalog.Load(viper.GetString(key.CatalogPath))
	if err != nil {
		return nil, err
	}

	for _, warning := range c.Lint() {
		log.Warn("catalog: " + warning.String())
	}

	return c, nil
}

func newApp() (*app, error) {
	c, err := loadCatalog()
	if err != nil {
		return nil, err
	}

	element, err := player.New(viper.GetString(key.Player))
	if err != nil {
		return nil, err
	}

	codec := deeplink.NewCodec(deeplink.NewFileLocation(""))

	engine := playback.New(playback.Options{
		Catalog:  c,
		Element:  element,
		Embeds:   player.NewEmbedHost(),
		Streams:  hls.NewFactory(hls.DefaultOptions()),
		Mirror:   codec,
		SiteName: viper.GetString(key.SiteName),
	})

	return &app{
		catalog: c,
		codec:   codec,
		engine:  engine,
		element: element,
	}, nil
}

// follow stores the selection of link as the current address, so the
// next Resolve picks it up.
func (a *app) follow(link string) error {
	values, err := deeplink.ParseLink(link)
	if err != nil {
		return err
	}

	if _, ok := deeplink.Decode(values, a.catalog); !ok {
		return fmt.Errorf("link %s does not select anything in the catalog", link)
	}

	return a.codec.Location().Write(values)
}

func (a *app) close() {
	if err := a.engine.Close(); err != nil {
		log.Warn(err)
	}
}

// newShareChain is the chain used inside the TUI. Manual output is left
// out because the TUI shows the link itself.
func newShareChain() *share.Chain {
	return (&share.Chain{}).
		With(share.MethodNative, share.NewNative()).
		With(share.MethodClipboard, share.NewClipboard())
}

// newAssistant returns the configured title assistant, or nil when no api
// key is set.
func newAssistant(ctx context.Context) insight.Assistant {
	assistant, err := insight.New(ctx)
	if err != nil {
		if !errors.Is(err, insight.ErrNoAPIKey) {
			log.Warn(err)
		}
		return nil
	}
	return assistant
}

func completionContentIDs(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	c, err := loadCatalog()
	if err != nil || len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return lo.Map(c.Items(), func(item *catalog.Item, _ int) string {
		return item.ID + "\t" + item.Title
	}), cobra.ShellCompDirectiveNoFileComp
}
