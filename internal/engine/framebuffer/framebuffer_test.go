package framebuffer

import (
	"bytes"
	"testing"
)

func TestFlipRows(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		rows int
		want []byte
	}{
		{"even", []byte{1, 1, 2, 2, 3, 3, 4, 4}, 4, []byte{4, 4, 3, 3, 2, 2, 1, 1}},
		{"odd", []byte{1, 1, 2, 2, 3, 3}, 3, []byte{3, 3, 2, 2, 1, 1}},
		{"single", []byte{9, 8}, 1, []byte{9, 8}},
		{"empty", []byte{}, 0, []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := append([]byte(nil), tt.in...)
			FlipRows(buf, 2, tt.rows)
			if !bytes.Equal(buf, tt.want) {
				t.Errorf("FlipRows() = %v, want %v", buf, tt.want)
			}
		})
	}
}
