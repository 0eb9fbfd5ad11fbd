package types

// Addresses of the builtin programs and sysvars.
var (
	SystemProgramID             = MustPubkeyFromString("11111111111111111111111111111111")
	VoteProgramID               = MustPubkeyFromString("Vote111111111111111111111111111111111111111")
	StakeProgramID              = MustPubkeyFromString("Stake11111111111111111111111111111111111111")
	ConfigProgramID             = MustPubkeyFromString("Config1111111111111111111111111111111111111")
	BPFLoaderUpgradeableID      = MustPubkeyFromString("BPFLoaderUpgradeab1e11111111111111111111111")
	BPFLoaderID                 = MustPubkeyFromString("BPFLoader2111111111111111111111111111111111")
	BPFLoaderDeprecatedID       = MustPubkeyFromString("BPFLoader1111111111111111111111111111111111")
	NativeLoaderID              = MustPubkeyFromString("NativeLoader1111111111111111111111111111111")
	AddressLookupTableProgramID = MustPubkeyFromString("AddressLookupTab1e1111111111111111111111111")
	ComputeBudgetProgramID      = MustPubkeyFromString("ComputeBudget111111111111111111111111111111")
	Ed25519ProgramID            = MustPubkeyFromString("Ed25519SigVerify111111111111111111111111111")
	Secp256k1ProgramID          = MustPubkeyFromString("KeccakSecp256k11111111111111111111111111111")

	SysvarOwnerID             = MustPubkeyFromString("Sysvar1111111111111111111111111111111111111")
	SysvarClockID             = MustPubkeyFromString("SysvarC1ock11111111111111111111111111111111")
	SysvarRentID              = MustPubkeyFromString("SysvarRent111111111111111111111111111111111")
	SysvarRecentBlockhashesID = MustPubkeyFromString("SysvarRecentB1ockHashes11111111111111111111")
	SysvarInstructionsID      = MustPubkeyFromString("Sysvar1nstructions1111111111111111111111111")
	SysvarSlotHashesID        = MustPubkeyFromString("SysvarS1otHashes111111111111111111111111111")
	SysvarStakeHistoryID      = MustPubkeyFromString("SysvarStakeHistory1111111111111111111111111")
	SysvarEpochScheduleID     = MustPubkeyFromString("SysvarEpochSchedu1e111111111111111111111111")
	SysvarFeesID              = MustPubkeyFromString("SysvarFees111111111111111111111111111111111")
	SysvarRewardsID           = MustPubkeyFromString("SysvarRewards111111111111111111111111111111")
	SysvarSlotHistoryID       = MustPubkeyFromString("SysvarS1otHistory11111111111111111111111111")
)

// BuiltinProgramIDs returns addresses of the builtin programs.
func BuiltinProgramIDs() []Pubkey {
	return []Pubkey{
		SystemProgramID, VoteProgramID, StakeProgramID, ConfigProgramID,
		BPFLoaderUpgradeableID, BPFLoaderID, BPFLoaderDeprecatedID, NativeLoaderID,
		AddressLookupTableProgramID, ComputeBudgetProgramID, Ed25519ProgramID, Secp256k1ProgramID,
	}
}

// SysvarIDs returns addresses of the sysvar accounts.
func SysvarIDs() []Pubkey {
	return []Pubkey{
		SysvarOwnerID, SysvarClockID, SysvarRentID, SysvarRecentBlockhashesID, SysvarInstructionsID,
		SysvarSlotHashesID, SysvarStakeHistoryID, SysvarEpochScheduleID, SysvarFeesID,
		SysvarRewardsID, SysvarSlotHistoryID,
	}
}
