package fixture

import "testing"

func TestCatalogIsValid(t *testing.T) {
	catalog := Catalog()
	if len(catalog) != 5 {
		t.Fatalf("expected 5 sample courses, got %d", len(catalog))
	}
	for _, in := range catalog {
		if len(in.TeeBoxes) != 3 {
			t.Fatalf("expected 3 tee boxes on %s, got %d", in.Name, len(in.TeeBoxes))
		}
		in.Normalize()
		if err := in.Validate(); err != nil {
			t.Fatalf("sample course %s is invalid: %v", in.Name, err)
		}
	}
}

func TestSampleHolesShortenForwardTees(t *testing.T) {
	champ := sampleHoles(0)
	forward := sampleHoles(2)
	if champ[0].Distance != 165 || champ[17].Distance != 165+17*15 {
		t.Fatalf("unexpected championship distances %d..%d", champ[0].Distance, champ[17].Distance)
	}
	if forward[0].Distance != 135 || forward[17].Distance != 135+17*11 {
		t.Fatalf("unexpected forward distances %d..%d", forward[0].Distance, forward[17].Distance)
	}
	if champ[3].Par != 5 || champ[1].Par != 3 || champ[0].Par != 4 {
		t.Fatalf("unexpected par pattern %+v", champ[:4])
	}
	if champ[17].HandicapIndex != 1 {
		t.Fatalf("expected hole 18 to be the hardest, got index %d", champ[17].HandicapIndex)
	}
}

func TestCatalogReturnsFreshCopies(t *testing.T) {
	first := Catalog()
	first[0].TeeBoxes[0].Holes[0].Par = 9
	if Catalog()[0].TeeBoxes[0].Holes[0].Par == 9 {
		t.Fatal("expected catalog to be rebuilt on every call")
	}
}
