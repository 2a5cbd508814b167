package cmd

import (
	"fmt"
)

// runHistory lists the recently generated posts, newest first.
func runHistory() error {
	a, err := setup(nil, nil)
	if err != nil {
		return err
	}
	return runHistoryOn(a)
}

func runHistoryOn(a *app) error {
	posts, err := a.store.RecentPosts()
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	if len(posts) == 0 {
		fmt.Println("No posts generated yet.")
		return nil
	}

	for i, post := range posts {
		fmt.Printf("%2d. %s\n", i+1, post.Title)
		fmt.Printf("    %s | %d words | %d min read\n",
			post.CreatedAt.Format("2006-01-02 15:04"), post.WordCount, post.ReadingTime)
	}
	return nil
}
