package domain

// WorldEvent is an hourly global modifier.
type WorldEvent string

// World events
const (
	EventNone         WorldEvent = "none"
	EventSuperDucks   WorldEvent = "super_ducks"
	EventGoldenHour   WorldEvent = "golden_hour"
	EventFoggy        WorldEvent = "foggy"
	EventNervousDucks WorldEvent = "nervous_ducks"
	EventShopClosed   WorldEvent = "shop_closed"
)

// WorldEvents lists every event that can be rolled, excluding EventNone.
var WorldEvents = []WorldEvent{
	EventSuperDucks,
	EventGoldenHour,
	EventFoggy,
	EventNervousDucks,
	EventShopClosed,
}

// AdjustWeight applies the event's modifier to a category spawn weight.
func (e WorldEvent) AdjustWeight(c Category, w int) int {
	switch {
	case e == EventSuperDucks && c == CategorySuper:
		return w * 2
	case e == EventGoldenHour && c == CategoryGolden:
		return w * 3
	case e == EventFoggy && c == CategoryGhost:
		return w * 3
	}
	return w
}

// FrightenChance applies the event's modifier to a frighten percentage.
func (e WorldEvent) FrightenChance(pct int) int {
	if e == EventNervousDucks {
		pct *= 2
	}
	return min(pct, 100)
}

// ShopClosed reports whether purchases are refused during the event.
func (e WorldEvent) ShopClosed() bool {
	return e == EventShopClosed
}

// Valid reports whether e is a known event name.
func (e WorldEvent) Valid() bool {
	if e == EventNone {
		return true
	}
	for _, known := range WorldEvents {
		if e == known {
			return true
		}
	}
	return false
}
