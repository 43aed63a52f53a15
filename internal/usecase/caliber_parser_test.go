package usecase

import (
	"reflect"
	"testing"
)

func TestExtractCaliber(t *testing.T) {
	testCases := []struct {
		name      string
		text      string
		want      string
		wantFound bool
	}{
		{
			name:      "canonical 9mm",
			text:      "1000 Rounds of 9mm Ammo by Winchester",
			want:      "9MM",
			wantFound: true,
		},
		{
			name:      "9x19 variant",
			text:      "Blazer Brass 9x19 115gr FMJ",
			want:      "9MM",
			wantFound: true,
		},
		{
			name:      "9 luger variant with space",
			text:      "Federal 9 Luger value pack",
			want:      "9MM",
			wantFound: true,
		},
		{
			name:      "223 remington",
			text:      "PMC Bronze .223 Remington 55gr",
			want:      ".223",
			wantFound: true,
		},
		{
			name:      "556 nato",
			text:      "Lake City 5.56 NATO M855",
			want:      "5.56",
			wantFound: true,
		},
		{
			name:      "308 via 7.62x51",
			text:      "Military surplus 7.62X51 battle packs",
			want:      ".308",
			wantFound: true,
		},
		{
			name:      "45 acp lowercase",
			text:      "blazer 45 acp 230 grain",
			want:      ".45 ACP",
			wantFound: true,
		},
		{
			name:      "30-06 springfield",
			text:      "Garand-safe 30-06 ammunition",
			want:      ".30-06",
			wantFound: true,
		},
		{
			name:      "no caliber present",
			text:      "Gun cleaning kit with brass brush",
			want:      "",
			wantFound: false,
		},
		{
			name:      "empty text",
			text:      "",
			want:      "",
			wantFound: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, found := ExtractCaliber(tc.text)
			if found != tc.wantFound {
				t.Fatalf("ExtractCaliber() found = %v, want %v", found, tc.wantFound)
			}
			if got != tc.want {
				t.Errorf("ExtractCaliber() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractCaliber_DeclaredOrderWins(t *testing.T) {
	// .223 is declared before 5.56 in the table, so dual-marked listings
	// always resolve to .223 regardless of token position in the text.
	text := "XM193 5.56 NATO / .223 Rem 55gr FMJ"
	got, found := ExtractCaliber(text)
	if !found {
		t.Fatal("expected a caliber")
	}
	if got != ".223" {
		t.Errorf("ExtractCaliber() = %q, want .223 (first declared canonical)", got)
	}
}

func TestCanonicalCalibers_FixedOrder(t *testing.T) {
	want := []string{
		"9MM", ".223", "5.56", ".308", ".45 ACP", ".40 S&W",
		".380", "7.62X39", "22LR", "300 BLK", "6.5 CM", ".30-06",
	}
	if got := CanonicalCalibers(); !reflect.DeepEqual(got, want) {
		t.Errorf("CanonicalCalibers() = %v, want %v", got, want)
	}
}

func TestExtractCalibers(t *testing.T) {
	t.Run("multiple calibers in table order", func(t *testing.T) {
		text := "Weekend sale: 5.56 NATO, 9mm Luger, and .45 ACP in stock"
		want := []string{"9MM", "5.56", ".45 ACP"}
		if got := ExtractCalibers(text); !reflect.DeepEqual(got, want) {
			t.Errorf("ExtractCalibers() = %v, want %v", got, want)
		}
	})

	t.Run("rifle calibers keep declared order", func(t *testing.T) {
		text := "Steel case deal: 22lr plinking packs and 7.62x39 spam cans"
		want := []string{"7.62X39", "22LR"}
		if got := ExtractCalibers(text); !reflect.DeepEqual(got, want) {
			t.Errorf("ExtractCalibers() = %v, want %v", got, want)
		}
	})

	t.Run("no duplicates for repeated mentions", func(t *testing.T) {
		text := "9mm 9mm 9x19 9 Luger"
		want := []string{"9MM"}
		if got := ExtractCalibers(text); !reflect.DeepEqual(got, want) {
			t.Errorf("ExtractCalibers() = %v, want %v", got, want)
		}
	})

	t.Run("nil for no matches", func(t *testing.T) {
		if got := ExtractCalibers("cleaning patches"); got != nil {
			t.Errorf("ExtractCalibers() = %v, want nil", got)
		}
	})
}
