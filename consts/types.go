// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	// Ledger action TypeIDs
	InitializeID uint8 = iota
	MintID
	TransferID
	TransferFromID
	ApproveID
	IncreaseAllowanceID
	DecreaseAllowanceID
	LockID
	UnlockID
	RewardID
	RewardsID
	TransfersID
	SetAutoStakingID
	EnableTransfersID
	AssignRewardRoleID
	AddValidMinterID
	AddRelayRecipientID
	DeleteRelayRecipientID
	TransferOwnershipID

	// Batch transfer contract
	BatchTransfersID

	// Swap
	InitializeMigrationID
	ConvertID
	DisableMigrationID
	TransferOldTokenOwnershipID

	// Legacy ledger
	LegacyMintTokensID
	LegacyTransferID
	LegacyTransferOwnershipID
	LegacyAcceptOwnershipID

	// Fee relay configuration
	SetChargeFeeID
	SetReserveID
)
