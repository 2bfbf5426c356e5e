package floorplan

import "testing"

func TestSearch_EmptyAndWhitespaceQueries(t *testing.T) {
	reg := twoFloorFixture(t)

	if got := reg.Search(""); len(got) != 0 {
		t.Errorf("Search(\"\") returned %d results, want 0", len(got))
	}
	if got := reg.Search("   "); len(got) != 0 {
		t.Errorf("Search(whitespace) returned %d results, want 0", len(got))
	}
}

func TestSearch_MatchesIDNameAndType(t *testing.T) {
	reg := twoFloorFixture(t)

	if got := reg.Search("r-cafe"); len(got) != 1 || got[0].ID != "r-cafe" {
		t.Errorf("by ID: got %d results", len(got))
	}
	if got := reg.Search("LOBBY"); len(got) != 1 || got[0].ID != "r-lobby" {
		t.Errorf("by name (case-insensitive): got %d results", len(got))
	}
	if got := reg.Search("lab"); len(got) != 1 || got[0].ID != "r-lab" {
		t.Errorf("by type: got %d results", len(got))
	}
}

func TestSearch_DeduplicatesByRoomID(t *testing.T) {
	reg := twoFloorFixture(t)

	// "ca" hits r-cafe by ID, by name, and by type (cafeteria); one result.
	got := reg.Search("ca")
	count := 0
	for _, room := range got {
		if room.ID == "r-cafe" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("r-cafe appeared %d times, want 1", count)
	}
}

func TestSearch_CrossesFloors(t *testing.T) {
	reg := twoFloorFixture(t)

	// "r-" prefixes every room ID on both floors.
	got := reg.Search("r-")
	if len(got) != 3 {
		t.Fatalf("Search(r-) = %d results, want 3", len(got))
	}
	levels := make(map[int]bool)
	for _, room := range got {
		levels[room.FloorLevel] = true
	}
	if !levels[0] || !levels[1] {
		t.Errorf("results span floors %v, want both 0 and 1", levels)
	}
}

func TestSearch_PrefixMatchesRankFirst(t *testing.T) {
	floors := []*FloorData{
		{
			FloorLevel: 0,
			Rooms: []Room{
				{ID: "a", Name: "Main Lab Annex", Type: RoomLab},
				{ID: "b", Name: "Lab One", Type: RoomLab},
			},
		},
	}
	reg, err := NewRegistry("rank", floors)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	got := reg.Search("lab")
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "b" {
		t.Errorf("first result = %q, want the name-prefix match b", got[0].ID)
	}
}

func TestResolveQR(t *testing.T) {
	reg := twoFloorFixture(t)

	room, ok := reg.ResolveQR("room_id:r-lab")
	if !ok {
		t.Fatal("ResolveQR(room_id:r-lab) failed")
	}
	if room.ID != "r-lab" || room.FloorLevel != 1 {
		t.Errorf("resolved %q on floor %d", room.ID, room.FloorLevel)
	}

	if _, ok := reg.ResolveQR("r-lab"); ok {
		t.Error("payload without prefix should not resolve")
	}
	if _, ok := reg.ResolveQR("room_id:ghost"); ok {
		t.Error("unknown room should not resolve")
	}
}
