package billparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitRow(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "plain fields",
			line: "a,b,c",
			want: []string{"a", "b", "c"},
		},
		{
			name: "quoted comma stays in field",
			line: `2024-01-01 10:00:00,"Shop, Inc",¥12.00`,
			want: []string{"2024-01-01 10:00:00", "Shop, Inc", "¥12.00"},
		},
		{
			name: "quotes and padding stripped",
			line: `  "x" , "y"  ,z `,
			want: []string{"x", "y", "z"},
		},
		{
			name: "trailing empty field",
			line: "a,b,",
			want: []string{"a", "b", ""},
		},
		{
			name: "tab padded identifier",
			line: "1,\"4200001234\t\",3",
			want: []string{"1", "4200001234", "3"},
		},
		{
			name: "multibyte content",
			line: `交易时间,交易类型,"微信红包,群",支出`,
			want: []string{"交易时间", "交易类型", "微信红包,群", "支出"},
		},
		{
			name: "empty line",
			line: "",
			want: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitRow(tt.line))
		})
	}
}

func TestSplitHeaderStripsByteOrderMark(t *testing.T) {
	got := SplitHeader("\ufeff\"交易时间\",交易类型,\"金额(元)\"")
	assert.Equal(t, []string{"交易时间", "交易类型", "金额(元)"}, got)
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitLines("a\r\nb\nc"))
}
