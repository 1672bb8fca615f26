package markdowncmd

import "testing"

func TestImportDirectoryCommandValidate(t *testing.T) {
	cases := []struct {
		name      string
		directory string
		wantErr   bool
	}{
		{name: "valid", directory: "chapters"},
		{name: "empty", directory: "", wantErr: true},
		{name: "whitespace", directory: "   ", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ImportDirectoryCommand{Directory: tc.directory}.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestSyncDirectoryCommandValidate(t *testing.T) {
	if err := (SyncDirectoryCommand{Directory: "chapters"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (SyncDirectoryCommand{}).Validate(); err == nil {
		t.Fatal("expected validation error for missing directory")
	}
}

func TestMessageTypes(t *testing.T) {
	if got := (ImportDirectoryCommand{}).Type(); got != "book.markdown.import_directory" {
		t.Fatalf("unexpected import type %q", got)
	}
	if got := (SyncDirectoryCommand{}).Type(); got != "book.markdown.sync_directory" {
		t.Fatalf("unexpected sync type %q", got)
	}
}
