package insight

import (
	"context"
	"errors"
	"testing"

	"github.com/seriesgenius/seriesgenius/catalog"
	. "github.com/smartystreets/goconvey/convey"
)

type assistantFunc func(ctx context.Context, item *catalog.Item, question string) (string, error)

func (f assistantFunc) Ask(ctx context.Context, item *catalog.Item, question string) (string, error) {
	return f(ctx, item, question)
}

func testItem() *catalog.Item {
	return &catalog.Item{
		ID:          "2",
		Kind:        catalog.Episodic,
		Title:       "Cyber City Chronicles",
		Description: "One hacker tries to bring down the system.",
		Genres:      []string{"Sci-Fi", "Thriller"},
		Cast:        []string{"Keanu Reeves", "Carrie-Anne Moss"},
		Director:    "The Wachowskis",
		Year:        2023,
		Episodes: []*catalog.Episode{
			{ID: "e1", Season: 1, Number: 1, URL: "https://cdn.example.com/s1e1.m3u8"},
		},
	}
}

func TestInstruction(t *testing.T) {
	Convey("The instruction carries the title details", t, func() {
		text := Instruction(testItem(), "SeriesGenius")

		So(text, ShouldContainSubstring, "streaming service called SeriesGenius")
		So(text, ShouldContainSubstring, `"Cyber City Chronicles"`)
		So(text, ShouldContainSubstring, "- Genre: Sci-Fi, Thriller")
		So(text, ShouldContainSubstring, "- Cast: Keanu Reeves, Carrie-Anne Moss")
		So(text, ShouldContainSubstring, "- Director: The Wachowskis")
		So(text, ShouldContainSubstring, "- Year: 2023")
		So(text, ShouldContainSubstring, "- Episodes: 1")

		Convey("Missing details are left out", func() {
			text := Instruction(&catalog.Item{ID: "1", Kind: catalog.Single, Title: "Plain"}, "SeriesGenius")
			So(text, ShouldNotContainSubstring, "Director")
			So(text, ShouldNotContainSubstring, "Year")
			So(text, ShouldNotContainSubstring, "Episodes")
		})
	})
}

func TestConversation(t *testing.T) {
	Convey("Given a conversation about a title", t, func() {
		var asked []string
		reply, failure := "A cyberpunk saga.", error(nil)
		assistant := assistantFunc(func(_ context.Context, item *catalog.Item, question string) (string, error) {
			asked = append(asked, item.ID+":"+question)
			return reply, failure
		})

		c := NewConversation(assistant, testItem(), "SeriesGenius")

		Convey("It opens with a greeting", func() {
			messages := c.Messages()
			So(messages, ShouldHaveLength, 1)
			So(messages[0].Role, ShouldEqual, RoleModel)
			So(messages[0].Text, ShouldContainSubstring, "SeriesGenius AI assistant")
			So(messages[0].Text, ShouldContainSubstring, "Cyber City Chronicles")
		})

		Convey("A question is recorded with its answer", func() {
			message, err := c.Ask(context.Background(), "  what is it about?  ")
			So(err, ShouldBeNil)
			So(message, ShouldResemble, Message{Role: RoleModel, Text: "A cyberpunk saga."})
			So(asked, ShouldResemble, []string{"2:what is it about?"})

			messages := c.Messages()
			So(messages, ShouldHaveLength, 3)
			So(messages[1], ShouldResemble, Message{Role: RoleUser, Text: "what is it about?"})
			So(c.Pending(), ShouldBeFalse)
		})

		Convey("Empty questions are rejected", func() {
			_, err := c.Ask(context.Background(), "   ")
			So(errors.Is(err, ErrEmptyQuestion), ShouldBeTrue)
			So(c.Messages(), ShouldHaveLength, 1)
			So(asked, ShouldBeEmpty)
		})

		Convey("Assistant failures become a reply", func() {
			failure = errors.New("503")
			message, err := c.Ask(context.Background(), "cast?")
			So(err, ShouldBeNil)
			So(message.Text, ShouldEqual, FailedReply)
		})

		Convey("A missing key is explained", func() {
			failure = ErrNoAPIKey
			message, _ := c.Ask(context.Background(), "cast?")
			So(message.Text, ShouldEqual, MissingKeyReply)
		})

		Convey("An empty answer is replaced", func() {
			reply = " "
			message, _ := c.Ask(context.Background(), "cast?")
			So(message.Text, ShouldEqual, EmptyReply)
		})

		Convey("Copies of the history do not alias it", func() {
			messages := c.Messages()
			messages[0].Text = "changed"
			So(c.Messages()[0].Text, ShouldNotEqual, "changed")
		})
	})

	Convey("A second question waits for the first answer", t, func() {
		release := make(chan struct{})
		started := make(chan struct{})
		assistant := assistantFunc(func(context.Context, *catalog.Item, string) (string, error) {
			close(started)
			<-release
			return "done", nil
		})

		c := NewConversation(assistant, testItem(), "SeriesGenius")
		done := make(chan Message)
		go func() {
			message, _ := c.Ask(context.Background(), "first")
			done <- message
		}()

		<-started
		So(c.Pending(), ShouldBeTrue)
		_, err := c.Ask(context.Background(), "second")
		So(errors.Is(err, ErrPending), ShouldBeTrue)

		close(release)
		So((<-done).Text, ShouldEqual, "done")
		So(c.Pending(), ShouldBeFalse)
		So(c.Messages(), ShouldHaveLength, 3)
	})

	Convey("Without an assistant every question gets the missing key reply", t, func() {
		c := NewConversation(nil, testItem(), "SeriesGenius")
		message, err := c.Ask(context.Background(), "hello")
		So(err, ShouldBeNil)
		So(message.Text, ShouldEqual, MissingKeyReply)
	})
}

func TestNewGemini(t *testing.T) {
	Convey("An empty api key disables the assistant", t, func() {
		g, err := NewGemini(context.Background(), "", "gemini-2.5-flash", "SeriesGenius")
		So(g, ShouldBeNil)
		So(errors.Is(err, ErrNoAPIKey), ShouldBeTrue)
	})
}
