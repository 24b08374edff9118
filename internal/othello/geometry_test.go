package othello

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseField(t *testing.T) {
	tests := []struct {
		field   string
		want    Position
		wantErr bool
	}{
		{field: "a1", want: Position{Row: 0, Col: 0}},
		{field: "h8", want: Position{Row: 7, Col: 7}},
		{field: "D3", want: Position{Row: 2, Col: 3}},
		{field: "e6", want: Position{Row: 5, Col: 4}},
		{field: "i1", wantErr: true},
		{field: "a9", wantErr: true},
		{field: "a", wantErr: true},
		{field: "--", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got, err := ParseField(tt.field)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestPositionString(t *testing.T) {
	for row := range MaxY {
		for col := range MaxX {
			pos := Position{Row: row, Col: col}

			parsed, err := ParseField(pos.String())
			require.NoError(t, err)
			require.Equal(t, pos, parsed)
			require.Equal(t, row*8+col, pos.Index())
		}
	}

	require.Equal(t, "(8,0)", Position{Row: 8, Col: 0}.String())
}

func TestPlayer(t *testing.T) {
	require.Equal(t, White, Black.Opponent())
	require.Equal(t, Black, White.Opponent())
	require.Equal(t, BlackDisc, Black.Disc())
	require.Equal(t, WhiteDisc, White.Disc())
	require.Equal(t, "black", Black.String())
	require.Equal(t, "white", White.String())

	require.Panics(t, func() { Player(0).Opponent() })
	require.Panics(t, func() { Player(3).Disc() })
}

func TestParsePlayer(t *testing.T) {
	p, err := ParsePlayer("White")
	require.NoError(t, err)
	require.Equal(t, White, p)

	p, err = ParsePlayer("b")
	require.NoError(t, err)
	require.Equal(t, Black, p)

	_, err = ParsePlayer("empty")
	require.Error(t, err)
}

func TestCellOwner(t *testing.T) {
	owner, ok := BlackDisc.Owner()
	require.True(t, ok)
	require.Equal(t, Black, owner)

	owner, ok = WhiteDisc.Owner()
	require.True(t, ok)
	require.Equal(t, White, owner)

	_, ok = Empty.Owner()
	require.False(t, ok)
}

func TestGeometry(t *testing.T) {
	require.Len(t, Directions, 8)
	for _, d := range Directions {
		require.False(t, d.DRow == 0 && d.DCol == 0)
	}

	for _, corner := range Corners {
		require.True(t, IsBorder(corner.Row, corner.Col))
	}

	require.True(t, InBounds(0, 7))
	require.False(t, InBounds(8, 7))
	require.False(t, IsBorder(3, 4))

	border := 0
	for row := range MaxY {
		for col := range MaxX {
			if IsBorder(row, col) {
				border++
			}
		}
	}
	require.Equal(t, 28, border)
}
