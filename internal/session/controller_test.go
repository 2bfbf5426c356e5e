package session

import (
	"reflect"
	"testing"

	"navicampus/internal/config"
	"navicampus/internal/floorplan"
	"navicampus/internal/graph"
	"navicampus/internal/route"
)

func intPtr(v int) *int { return &v }

// testBuilding is a three-floor fixture. Floors 0 and 1 are joined by a
// stairwell; floor 5 exists but has no navigation nodes at all.
func testBuilding(t *testing.T) (*floorplan.Registry, *config.Config, *graph.MergedCache) {
	t.Helper()
	floors := []*floorplan.FloorData{
		{
			FloorLevel: 0,
			Rooms: []floorplan.Room{
				{ID: "g-lobby", Name: "Lobby", X: 0, Y: 0, W: 20, H: 20, Type: floorplan.RoomWaiting},
			},
			Navigation: floorplan.NavigationData{
				Nodes: []floorplan.NavigationNode{
					{ID: "g-a", X: 10, Y: 30, Type: floorplan.NodeHallway},
					{ID: "g-b", X: 60, Y: 30, Type: floorplan.NodeHallway},
					{ID: "g-stairs", X: 90, Y: 30, Type: floorplan.NodePortal, TargetFloor: intPtr(0)},
				},
				Edges: []floorplan.NavigationEdge{
					{From: "g-a", To: "g-b", Weight: 50},
					{From: "g-b", To: "g-stairs", Weight: 30},
				},
			},
		},
		{
			FloorLevel: 1,
			Rooms: []floorplan.Room{
				{ID: "f1-lab", Name: "Lab", X: 0, Y: 0, W: 20, H: 20, Type: floorplan.RoomLab},
			},
			Navigation: floorplan.NavigationData{
				Nodes: []floorplan.NavigationNode{
					{ID: "f1-stairs", X: 90, Y: 30, Type: floorplan.NodePortal, TargetFloor: intPtr(1)},
					{ID: "f1-a", X: 10, Y: 30, Type: floorplan.NodeHallway},
				},
				Edges: []floorplan.NavigationEdge{
					{From: "f1-stairs", To: "f1-a", Weight: 80},
				},
			},
		},
		{
			FloorLevel: 5,
			Rooms: []floorplan.Room{
				{ID: "attic", Name: "Attic Storage", X: 0, Y: 0, W: 10, H: 10, Type: floorplan.RoomOffice},
			},
		},
	}
	reg, err := floorplan.NewRegistry("test", floors)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	cfg := config.Default()
	return reg, cfg, graph.NewMergedCache(cfg.PortalEdgeWeight)
}

func TestNavigateTo_SameFloor(t *testing.T) {
	reg, cfg, graphs := testBuilding(t)
	ctl := New(reg, cfg, graphs, 0)

	room, _ := reg.Room("g-lobby")
	if err := ctl.NavigateTo(room); err != nil {
		t.Fatalf("NavigateTo: %v", err)
	}

	snap := ctl.Snapshot()
	if snap.Navigation == nil {
		t.Fatal("expected active navigation")
	}
	if snap.Navigation.StartNodeID != "g-a" {
		t.Errorf("start = %q, want g-a (first node on floor 0)", snap.Navigation.StartNodeID)
	}
	if snap.Navigation.DestinationRoomID != "g-lobby" {
		t.Errorf("destination = %q", snap.Navigation.DestinationRoomID)
	}
	// Lobby center (10,10) is closest to g-a (10,30): route is the single
	// start node.
	if len(snap.Navigation.Path) != 1 || snap.Navigation.Path[0].ID != "g-a" {
		t.Errorf("path = %+v", snap.Navigation.Path)
	}
	if snap.Navigation.Distance != 0 {
		t.Errorf("distance = %d, want 0", snap.Navigation.Distance)
	}
}

func TestNavigateTo_CrossFloorRoute(t *testing.T) {
	reg, cfg, graphs := testBuilding(t)
	ctl := New(reg, cfg, graphs, 0)

	room, _ := reg.Room("f1-lab")
	if err := ctl.NavigateTo(room); err != nil {
		t.Fatalf("NavigateTo: %v", err)
	}

	snap := ctl.Snapshot()
	if snap.Navigation == nil {
		t.Fatal("expected active navigation")
	}
	want := []string{"g-a", "g-b", "g-stairs", "f1-stairs", "f1-a"}
	if len(snap.Navigation.Path) != len(want) {
		t.Fatalf("path len = %d, want %d", len(snap.Navigation.Path), len(want))
	}
	for i, id := range want {
		if snap.Navigation.Path[i].ID != id {
			t.Errorf("path[%d] = %q, want %q", i, snap.Navigation.Path[i].ID, id)
		}
	}
	if snap.Navigation.Distance <= 0 || snap.Navigation.EstimatedTime <= 0 {
		t.Errorf("distance/time = %d/%d, want positive", snap.Navigation.Distance, snap.Navigation.EstimatedTime)
	}
	if len(snap.Instructions) == 0 {
		t.Error("expected at least one instruction")
	}
}

func TestNavigateTo_Idempotent(t *testing.T) {
	reg, cfg, graphs := testBuilding(t)
	ctl := New(reg, cfg, graphs, 0)
	room, _ := reg.Room("f1-lab")

	if err := ctl.NavigateTo(room); err != nil {
		t.Fatalf("first NavigateTo: %v", err)
	}
	first := ctl.Snapshot()

	if err := ctl.NavigateTo(room); err != nil {
		t.Fatalf("second NavigateTo: %v", err)
	}
	second := ctl.Snapshot()

	if first.Navigation.Distance != second.Navigation.Distance {
		t.Errorf("distance changed: %d vs %d", first.Navigation.Distance, second.Navigation.Distance)
	}
	if first.Navigation.EstimatedTime != second.Navigation.EstimatedTime {
		t.Errorf("time changed: %d vs %d", first.Navigation.EstimatedTime, second.Navigation.EstimatedTime)
	}
	if len(first.Instructions) != len(second.Instructions) {
		t.Errorf("instruction count changed: %d vs %d", len(first.Instructions), len(second.Instructions))
	}
	if !reflect.DeepEqual(first.Navigation.Path, second.Navigation.Path) {
		t.Error("path changed between identical requests")
	}
}

func TestNavigateTo_DestinationFloorWithoutNodes(t *testing.T) {
	reg, cfg, graphs := testBuilding(t)
	ctl := New(reg, cfg, graphs, 0)

	room, _ := reg.Room("attic")
	if err := ctl.NavigateTo(room); err == nil {
		t.Fatal("expected error for floor without navigation nodes")
	}
	snap := ctl.Snapshot()
	if snap.Navigation != nil {
		t.Error("failed navigation must leave the session Idle")
	}
	if len(snap.Instructions) != 0 {
		t.Errorf("instructions = %v, want none", snap.Instructions)
	}
	if ctl.Navigating() {
		t.Error("Navigating() = true after failure")
	}
}

func TestNavigateTo_FailureClearsPreviousRoute(t *testing.T) {
	reg, cfg, graphs := testBuilding(t)
	ctl := New(reg, cfg, graphs, 0)

	room, _ := reg.Room("f1-lab")
	if err := ctl.NavigateTo(room); err != nil {
		t.Fatalf("NavigateTo: %v", err)
	}
	if !ctl.Navigating() {
		t.Fatal("expected active route")
	}

	attic, _ := reg.Room("attic")
	if err := ctl.NavigateTo(attic); err == nil {
		t.Fatal("expected failure")
	}
	if ctl.Navigating() {
		t.Error("stale route survived a failed request")
	}
}

func TestNavigateTo_CurrentFloorWithoutNodes(t *testing.T) {
	reg, cfg, graphs := testBuilding(t)
	ctl := New(reg, cfg, graphs, 5)

	room, _ := reg.Room("g-lobby")
	if err := ctl.NavigateTo(room); err == nil {
		t.Fatal("expected error when walker's floor has no nodes")
	}
	if ctl.Navigating() {
		t.Error("expected Idle session")
	}
}

func TestClearNavigation(t *testing.T) {
	reg, cfg, graphs := testBuilding(t)
	ctl := New(reg, cfg, graphs, 0)

	room, _ := reg.Room("f1-lab")
	if err := ctl.NavigateTo(room); err != nil {
		t.Fatalf("NavigateTo: %v", err)
	}
	ctl.ClearNavigation()

	snap := ctl.Snapshot()
	if snap.Navigation != nil || snap.Destination != nil {
		t.Error("clear left navigation state behind")
	}
	if len(snap.Instructions) != 0 || len(snap.VisibleSegments) != 0 {
		t.Error("clear left derived views behind")
	}
}

func TestVisibleSegments_FilterByCurrentFloor(t *testing.T) {
	reg, cfg, graphs := testBuilding(t)
	ctl := New(reg, cfg, graphs, 0)

	room, _ := reg.Room("f1-lab")
	if err := ctl.NavigateTo(room); err != nil {
		t.Fatalf("NavigateTo: %v", err)
	}

	snap := ctl.Snapshot()
	for _, node := range snap.VisibleSegments {
		if node.Floor != 0 {
			t.Errorf("segment %q on floor %d leaked into floor-0 view", node.ID, node.Floor)
		}
	}

	ctl.SetCurrentFloor(1)
	snap = ctl.Snapshot()
	if snap.Navigation == nil {
		t.Fatal("SetCurrentFloor must not drop the route")
	}
	for _, node := range snap.VisibleSegments {
		if node.Floor != 1 {
			t.Errorf("segment %q on floor %d leaked into floor-1 view", node.ID, node.Floor)
		}
	}
}

func TestNextFloorChange_UpTwoFloors(t *testing.T) {
	reg, cfg, graphs := testBuilding(t)
	ctl := New(reg, cfg, graphs, 0)

	// Two nodes on floor 0 followed by two on floor 2: the first level jump
	// ahead of the walker spans two floors.
	ctl.mu.Lock()
	ctl.nav = &NavigationState{Path: []route.PathNode{
		{ID: "a", Floor: 0},
		{ID: "b", Floor: 0},
		{ID: "c", Floor: 2},
		{ID: "d", Floor: 2},
	}}
	ctl.recomputeDerivedLocked()
	ctl.mu.Unlock()

	snap := ctl.Snapshot()
	if snap.NextFloorChange == nil {
		t.Fatal("expected a pending floor change")
	}
	if snap.NextFloorChange.Direction != "up" || snap.NextFloorChange.Floors != 2 {
		t.Errorf("floor change = %+v, want up 2", snap.NextFloorChange)
	}
}

func TestNextFloorChange_FollowsCurrentFloor(t *testing.T) {
	reg, cfg, graphs := testBuilding(t)
	ctl := New(reg, cfg, graphs, 0)

	room, _ := reg.Room("f1-lab")
	if err := ctl.NavigateTo(room); err != nil {
		t.Fatalf("NavigateTo: %v", err)
	}

	snap := ctl.Snapshot()
	if snap.NextFloorChange == nil {
		t.Fatal("expected a pending floor change on floor 0")
	}
	if snap.NextFloorChange.Direction != "up" || snap.NextFloorChange.Floors != 1 {
		t.Errorf("floor change = %+v, want up 1", snap.NextFloorChange)
	}

	// No path node on the walker's floor: nothing to scan forward from.
	ctl.SetCurrentFloor(2)
	if snap = ctl.Snapshot(); snap.NextFloorChange != nil {
		t.Errorf("floor change = %+v, want nil off-route", snap.NextFloorChange)
	}
}

func TestNextFloorChange_Descending(t *testing.T) {
	reg, cfg, graphs := testBuilding(t)
	ctl := New(reg, cfg, graphs, 3)

	ctl.mu.Lock()
	ctl.nav = &NavigationState{Path: []route.PathNode{
		{ID: "a", Floor: 3},
		{ID: "b", Floor: 1},
	}}
	ctl.recomputeDerivedLocked()
	ctl.mu.Unlock()

	snap := ctl.Snapshot()
	if snap.NextFloorChange == nil {
		t.Fatal("expected a pending floor change")
	}
	if snap.NextFloorChange.Direction != "down" || snap.NextFloorChange.Floors != 2 {
		t.Errorf("floor change = %+v, want down 2", snap.NextFloorChange)
	}
}

func TestSnapshot_EmptySliceDefaults(t *testing.T) {
	reg, cfg, graphs := testBuilding(t)
	ctl := New(reg, cfg, graphs, 0)

	snap := ctl.Snapshot()
	if snap.SearchResults == nil || snap.VisibleSegments == nil || snap.Instructions == nil {
		t.Error("Idle snapshot must carry empty slices, not nil")
	}
	if snap.Navigation != nil || snap.NextFloorChange != nil || snap.Destination != nil {
		t.Error("Idle snapshot must carry nil pointers for absent state")
	}
}

func TestSetSearchQuery_FeedsSnapshotResults(t *testing.T) {
	reg, cfg, graphs := testBuilding(t)
	ctl := New(reg, cfg, graphs, 0)

	ctl.SetSearchQuery("lab")
	snap := ctl.Snapshot()
	if snap.SearchQuery != "lab" {
		t.Errorf("query = %q", snap.SearchQuery)
	}
	if len(snap.SearchResults) != 1 || snap.SearchResults[0].ID != "f1-lab" {
		t.Errorf("results = %+v, want f1-lab", snap.SearchResults)
	}
}
