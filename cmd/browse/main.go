// Command browse is a terminal client for the curriculum catalog. It
// walks the grade tree through the same source chain the web client uses
// (remote API first, static snapshots as fallback) and shows each media
// item's watched state for one student.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/andytrench/history-media-hunter/internal/browse"
	"github.com/andytrench/history-media-hunter/internal/config"
	"github.com/andytrench/history-media-hunter/internal/model"
)

func main() {
	grade := flag.String("grade", "5", "grade number to browse")
	student := flag.String("student", "", "student id (generated when empty)")
	search := flag.String("search", "", "filter topics and media by text")
	mediaType := flag.String("type", "", "filter media by type")
	flag.Parse()

	cfg := config.Load()
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	user := &model.User{UserID: *student, Role: model.RoleStudent}
	session := browse.NewFromConfig(cfg, user, logger)

	ctx := context.Background()
	session.Init(ctx)
	session.SelectGrade(ctx, *grade)
	session.SearchQuery = *search
	session.Filters.Type = *mediaType

	tree := session.Tree(ctx)
	topics, media := browse.Counts(tree)
	fmt.Printf("%s (grade %s): %d topics, %d media, progress from %s\n",
		tree.Name, tree.Grade, topics, media, session.Store.Source())

	for _, topic := range session.VisibleTopics(ctx) {
		fmt.Printf("\n%s\n", topic.Name)
		session.CurrentTopic = topic.ID
		for _, m := range session.VisibleMedia(ctx) {
			mark := " "
			if session.Store.IsWatched(&m) {
				mark = "x"
			}
			year := ""
			if m.Year > 0 {
				year = fmt.Sprintf(" (%d)", m.Year)
			}
			fmt.Printf("  [%s] %s%s  %s\n", mark, m.Title, year, m.Type)
		}
	}
}
