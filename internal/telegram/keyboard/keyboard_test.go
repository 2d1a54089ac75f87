package keyboard

import "testing"

func buttons(n int) []InlineBtn {
	out := make([]InlineBtn, n)
	for i := range out {
		out[i] = InlineBtn{Text: "b", Unique: "u", Data: "d"}
	}
	return out
}

func TestInlineButtonsOnePerRow(t *testing.T) {
	markup := InlineButtons(buttons(3))
	if len(markup.InlineKeyboard) != 3 {
		t.Fatalf("rows = %d, want 3", len(markup.InlineKeyboard))
	}
	for i, row := range markup.InlineKeyboard {
		if len(row) != 1 {
			t.Fatalf("row %d has %d buttons, want 1", i, len(row))
		}
	}
}

func TestInlineButtonsNPerRow(t *testing.T) {
	cases := []struct {
		name    string
		count   int
		perRow  int
		rowLens []int
	}{
		{"even_split", 4, 2, []int{2, 2}},
		{"remainder_row", 5, 2, []int{2, 2, 1}},
		{"single_row", 2, 3, []int{2}},
		{"n_one_falls_back", 3, 1, []int{1, 1, 1}},
		{"n_zero_falls_back", 2, 0, []int{1, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			markup := InlineButtonsNPerRow(buttons(tc.count), tc.perRow)
			if len(markup.InlineKeyboard) != len(tc.rowLens) {
				t.Fatalf("rows = %d, want %d", len(markup.InlineKeyboard), len(tc.rowLens))
			}
			for i, want := range tc.rowLens {
				if got := len(markup.InlineKeyboard[i]); got != want {
					t.Fatalf("row %d has %d buttons, want %d", i, got, want)
				}
			}
		})
	}
}

func TestInlineButtonsRowsKeepsShape(t *testing.T) {
	markup := InlineButtonsRows(buttons(2), buttons(1))
	if len(markup.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d, want 2", len(markup.InlineKeyboard))
	}
	if len(markup.InlineKeyboard[0]) != 2 || len(markup.InlineKeyboard[1]) != 1 {
		t.Fatalf("unexpected row shape: %v", markup.InlineKeyboard)
	}
	b := markup.InlineKeyboard[0][0]
	if b.Unique != "u" || b.Data != "d" {
		t.Fatalf("button lost identity: %+v", b)
	}
}
