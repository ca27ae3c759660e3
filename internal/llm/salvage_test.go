package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalLoose(t *testing.T) {
	type payload struct {
		StoreName    string `json:"store_name"`
		PurchaseDate string `json:"purchase_date"`
	}

	type testCase struct {
		name    string
		in      string
		want    payload
		wantErr bool
	}

	tests := []testCase{
		{
			name: "StrictJSON",
			in:   `{"store_name":"ライフ","purchase_date":"2025-09-28"}`,
			want: payload{StoreName: "ライフ", PurchaseDate: "2025-09-28"},
		},
		{
			name: "FencedJSON",
			in:   "```json\n{\"store_name\":\"ライフ\",\"purchase_date\":\"2025-09-28\"}\n```",
			want: payload{StoreName: "ライフ", PurchaseDate: "2025-09-28"},
		},
		{
			name: "JSONWrappedInProse",
			in:   "はい、抽出結果です。\n{\"store_name\":\"ライフ\",\"purchase_date\":\"2025-09-28\"}\nご確認ください。",
			want: payload{StoreName: "ライフ", PurchaseDate: "2025-09-28"},
		},
		{
			name:    "NoJSONObject",
			in:      "店名はライフ、日付は2025-09-28です。",
			wantErr: true,
		},
		{
			name:    "BrokenJSON",
			in:      `{"store_name": "ライフ",}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got payload

			err := unmarshalLoose(tt.in, &got)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
