package cmd

import "testing"

func TestRootRunsSummary(t *testing.T) {
	if rootCmd.RunE == nil {
		t.Fatal("bare fuelsync should print the summary")
	}
	f := rootCmd.PersistentFlags().Lookup("days")
	if f == nil || f.DefValue != "0" {
		t.Fatalf("--days flag = %+v", f)
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	for _, name := range []string{"add", "edit", "rm", "list", "show", "summary", "trend", "export", "import", "reset", "config", "setup", "tui"} {
		c, _, err := rootCmd.Find([]string{name})
		if err != nil || c == rootCmd {
			t.Errorf("subcommand %q not registered: %v", name, err)
		}
	}
}
