package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Validation errors
	CodeInvalidRequest        Code = "INVALID_REQUEST"
	CodeInvalidTarget         Code = "INVALID_TARGET"
	CodeInsufficientResource  Code = "INSUFFICIENT_RESOURCE"
	CodeActionOnCooldown      Code = "ACTION_ON_COOLDOWN"
	CodeItemNotUsableInBattle Code = "ITEM_NOT_USABLE_IN_BATTLE"

	// Lookup errors
	CodePlayerNotFound    Code = "PLAYER_NOT_FOUND"
	CodeEncounterNotFound Code = "ENCOUNTER_NOT_FOUND"

	// Content errors
	CodeMissingNextNode  Code = "MISSING_NEXT_NODE"
	CodeUnknownReference Code = "UNKNOWN_REFERENCE"
	CodeInvalidEncounter Code = "INVALID_ENCOUNTER"

	// Infrastructure errors
	CodeContentUnavailable Code = "CONTENT_UNAVAILABLE"
	CodeLoadFailed         Code = "LOAD_FAILED"
	CodePersistFailed      Code = "PERSIST_FAILED"
)

// Kind maps a code to its error kind.
func (c Code) Kind() Kind {
	switch c {
	case CodeInvalidRequest,
		CodeInvalidTarget,
		CodeInsufficientResource,
		CodeActionOnCooldown,
		CodeItemNotUsableInBattle:
		return KindValidation

	case CodePlayerNotFound,
		CodeEncounterNotFound:
		return KindNotFound

	case CodeMissingNextNode,
		CodeUnknownReference,
		CodeInvalidEncounter:
		return KindDataIntegrity

	case CodeContentUnavailable,
		CodeLoadFailed,
		CodePersistFailed:
		return KindResource

	default:
		return KindUnknown
	}
}
