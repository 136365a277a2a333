package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/campaignctl/influencer-planner/internal/replay"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to plan fixture JSON")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json")
		os.Exit(2)
	}

	f, err := replay.LoadFixture(*fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	result, err := replay.Verify(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if result.Passed {
		fmt.Printf("fixture ok: %s (%d expected selections)\n", f.Description, len(f.Expected.Usernames))
		return
	}

	fmt.Printf("fixture drifted: %s\n", f.Description)
	for _, d := range result.Drifts {
		fmt.Printf("  %-24s want=%s got=%s\n", d.Field, d.Want, d.Got)
	}
	os.Exit(1)
}

// #endregion main
