// SPDX-License-Identifier: Apache-2.0

package mostype

// Kind identifies the concrete MOS message type of a parsed document. The
// set is closed: merge behaviour is dispatched by a single switch over Kind,
// so adding a kind means extending that switch.
type Kind int

const (
	// KindUnknown is the zero value; no valid Message carries it.
	KindUnknown Kind = iota

	// KindRunningOrder is the roCreate base message a running order is
	// established from.
	KindRunningOrder

	KindStorySend
	KindStoryAppend
	KindStoryDelete
	KindStoryInsert
	KindStoryMove
	KindStoryReplace
	KindItemDelete
	KindItemInsert
	KindItemMoveMultiple
	KindItemReplace
	KindRunningOrderReplace
	KindMetaDataReplace
	KindReadyToAir

	// KindRunningOrderEnd is the terminal roDelete message that closes a
	// running order to further merges.
	KindRunningOrderEnd

	KindRunningOrderControl

	// roElementAction variants, disambiguated by the operation attribute
	// and the payload shape of element_target.
	KindEAStoryReplace
	KindEAItemReplace
	KindEAStoryDelete
	KindEAItemDelete
	KindEAStoryInsert
	KindEAItemInsert
	KindEAStorySwap
	KindEAItemSwap
	KindEAStoryMove
	KindEAItemMove
)

var kindNames = map[Kind]string{
	KindRunningOrder:        "RunningOrder",
	KindStorySend:           "StorySend",
	KindStoryAppend:         "StoryAppend",
	KindStoryDelete:         "StoryDelete",
	KindStoryInsert:         "StoryInsert",
	KindStoryMove:           "StoryMove",
	KindStoryReplace:        "StoryReplace",
	KindItemDelete:          "ItemDelete",
	KindItemInsert:          "ItemInsert",
	KindItemMoveMultiple:    "ItemMoveMultiple",
	KindItemReplace:         "ItemReplace",
	KindRunningOrderReplace: "RunningOrderReplace",
	KindMetaDataReplace:     "MetaDataReplace",
	KindReadyToAir:          "ReadyToAir",
	KindRunningOrderEnd:     "RunningOrderEnd",
	KindRunningOrderControl: "RunningOrderControl",
	KindEAStoryReplace:      "EAStoryReplace",
	KindEAItemReplace:       "EAItemReplace",
	KindEAStoryDelete:       "EAStoryDelete",
	KindEAItemDelete:        "EAItemDelete",
	KindEAStoryInsert:       "EAStoryInsert",
	KindEAItemInsert:        "EAItemInsert",
	KindEAStorySwap:         "EAStorySwap",
	KindEAItemSwap:          "EAItemSwap",
	KindEAStoryMove:         "EAStoryMove",
	KindEAItemMove:          "EAItemMove",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// baseTagName is the top-level tag a message of this kind nests its payload
// under.
func (k Kind) baseTagName() string {
	switch k {
	case KindRunningOrder:
		return "roCreate"
	case KindStorySend:
		return "roStorySend"
	case KindStoryAppend:
		return "roStoryAppend"
	case KindStoryDelete:
		return "roStoryDelete"
	case KindStoryInsert:
		return "roStoryInsert"
	case KindStoryMove:
		return "roStoryMove"
	case KindStoryReplace:
		return "roStoryReplace"
	case KindItemDelete:
		return "roItemDelete"
	case KindItemInsert:
		return "roItemInsert"
	case KindItemMoveMultiple:
		return "roItemMoveMultiple"
	case KindItemReplace:
		return "roItemReplace"
	case KindRunningOrderReplace:
		return "roReplace"
	case KindMetaDataReplace:
		return "roMetadataReplace"
	case KindReadyToAir:
		return "roReadyToAir"
	case KindRunningOrderEnd:
		return "roDelete"
	case KindRunningOrderControl:
		return "roCtrl"
	case KindEAStoryReplace, KindEAItemReplace, KindEAStoryDelete, KindEAItemDelete,
		KindEAStoryInsert, KindEAItemInsert, KindEAStorySwap, KindEAItemSwap,
		KindEAStoryMove, KindEAItemMove:
		return "roElementAction"
	default:
		return ""
	}
}
