package graph

import (
	"fmt"

	"github.com/chatforge/blockflow/internal/ir"
)

// controlFlowTargets is the closed compatibility table for SEQUENCE and
// CONDITION edges, keyed on source category. The switch is exhaustive
// over every category so a new variant fails loudly here instead of
// falling through an open-ended runtime check.
//
// REPLY appears as a legal source even though replies are terminal by
// convention: an outgoing SEQUENCE edge from a reply is a ValidateAll
// warning, not a connect rejection.
func controlFlowTargets(src ir.Category) map[ir.Category]bool {
	switch src {
	case ir.CategoryEvent:
		return categorySet(ir.CategoryReply, ir.CategoryControl, ir.CategorySetting)
	case ir.CategoryReply:
		return categorySet(ir.CategoryReply, ir.CategoryControl, ir.CategorySetting)
	case ir.CategoryControl:
		return categorySet(ir.CategoryReply, ir.CategoryControl, ir.CategorySetting, ir.CategoryContent)
	case ir.CategorySetting:
		return categorySet(ir.CategoryReply, ir.CategoryControl, ir.CategorySetting)
	case ir.CategoryContainer:
		return categorySet(ir.CategoryReply, ir.CategoryContent, ir.CategoryLayout)
	case ir.CategoryContent:
		return categorySet(ir.CategoryReply, ir.CategoryContent)
	case ir.CategoryLayout:
		return categorySet(ir.CategoryContainer, ir.CategoryContent, ir.CategoryLayout)
	default:
		return nil
	}
}

func categorySet(cats ...ir.Category) map[ir.Category]bool {
	set := make(map[ir.Category]bool, len(cats))
	for _, c := range cats {
		set[c] = true
	}
	return set
}

// checkCompatibility applies the category table and port capabilities to
// a prospective connection. Returns nil when the pair is legal.
//
// Control-flow edges (SEQUENCE, CONDITION) need a next-capable source
// port, a previous-capable target port, and a legal category pair. DATA
// edges carry value wiring instead: they need output/input ports and are
// exempt from the category table.
func checkCompatibility(srcSchema, dstSchema ir.BlockSchema, typ ir.ConnectionType) error {
	switch typ {
	case ir.ConnectionData:
		if !srcSchema.Ports.Output {
			return incompatible(fmt.Sprintf("source %q exposes no output port", srcSchema.BlockType))
		}
		if !dstSchema.Ports.Input {
			return incompatible(fmt.Sprintf("target %q accepts no input port", dstSchema.BlockType))
		}
		return nil
	default: // SEQUENCE, CONDITION
		if !srcSchema.Ports.Next {
			return incompatible(fmt.Sprintf("source %q exposes no next port", srcSchema.BlockType))
		}
		if !dstSchema.Ports.Previous {
			return incompatible(fmt.Sprintf("target %q exposes no previous port", dstSchema.BlockType))
		}
		if !controlFlowTargets(srcSchema.Category)[dstSchema.Category] {
			return incompatible(fmt.Sprintf("%s blocks may not connect to %s blocks",
				srcSchema.Category, dstSchema.Category))
		}
		return nil
	}
}

func incompatible(msg string) error {
	return &Error{Code: ErrCodeIncompatibleBlocks, Message: msg}
}
