package testtransaction

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	testsig "github.com/kagren/solana-sdk/internal/testutils/sig"
	"github.com/kagren/solana-sdk/types"
)

const (
	systemTransfer     = 2
	systemAdvanceNonce = 4
	voteVote           = 2
)

type Option func(*types.Message)

func WithBlockhash(h types.Hash) Option {
	return func(m *types.Message) {
		m.RecentBlockhash = h
	}
}

// WithInstruction appends instruction to the message.
func WithInstruction(ix types.CompiledInstruction) Option {
	return func(m *types.Message) {
		m.Instructions = append(m.Instructions, ix)
	}
}

// WithAccountKeys appends (non-signer, readonly) account keys to the message.
func WithAccountKeys(keys ...types.Pubkey) Option {
	return func(m *types.Message) {
		m.AccountKeys = append(m.AccountKeys, keys...)
		m.Header.NumReadonlyUnsignedAccounts += uint8(len(keys))
	}
}

// TransferData returns data of the system program transfer instruction.
func TransferData(lamports uint64) []byte {
	data := binary.LittleEndian.AppendUint32(nil, systemTransfer)
	return binary.LittleEndian.AppendUint64(data, lamports)
}

func AdvanceNonceData() []byte {
	return binary.LittleEndian.AppendUint32(nil, systemAdvanceNonce)
}

/*
NewTransferMessage returns legacy message which transfers lamports from
payer to "to". Account keys are [payer, to, system program].
*/
func NewTransferMessage(payer, to types.Pubkey, lamports uint64, opts ...Option) *types.Message {
	msg := &types.Message{
		Header:          types.NewMessageHeader(1, 0, 1),
		AccountKeys:     []types.Pubkey{payer, to, types.SystemProgramID},
		RecentBlockhash: types.NewUniqueHash(),
		Instructions: []types.CompiledInstruction{
			{ProgramIDIndex: 2, Accounts: []uint8{0, 1}, Data: TransferData(lamports)},
		},
	}
	for _, o := range opts {
		o(msg)
	}
	return msg
}

// NewTransfer returns signed legacy transfer transaction.
func NewTransfer(t *testing.T, payer testsig.Keypair, to types.Pubkey, lamports uint64, opts ...Option) *types.Transaction {
	t.Helper()
	return Sign(t, NewTransferMessage(payer.Pubkey, to, lamports, opts...), payer)
}

/*
NewNonceTransfer returns signed legacy transfer transaction which uses durable
nonce, the first instruction advances the nonce account. Account keys are
[payer, nonce, to, system program, recent blockhashes sysvar].
*/
func NewNonceTransfer(t *testing.T, payer testsig.Keypair, nonce, to types.Pubkey) *types.Transaction {
	t.Helper()
	msg := &types.Message{
		Header:          types.NewMessageHeader(1, 0, 2),
		AccountKeys:     []types.Pubkey{payer.Pubkey, nonce, to, types.SystemProgramID, types.SysvarRecentBlockhashesID},
		RecentBlockhash: types.NewUniqueHash(),
		Instructions: []types.CompiledInstruction{
			{ProgramIDIndex: 3, Accounts: []uint8{1, 4, 0}, Data: AdvanceNonceData()},
			{ProgramIDIndex: 3, Accounts: []uint8{0, 2}, Data: TransferData(1)},
		},
	}
	return Sign(t, msg, payer)
}

/*
NewVoteMessage returns legacy message with single vote instruction. Account
keys are [node, authority, vote account, vote program]; node is the fee payer
and authority is readonly signer.
*/
func NewVoteMessage(node, authority, voteAccount types.Pubkey) *types.Message {
	return &types.Message{
		Header:          types.NewMessageHeader(2, 1, 1),
		AccountKeys:     []types.Pubkey{node, authority, voteAccount, types.VoteProgramID},
		RecentBlockhash: types.NewUniqueHash(),
		Instructions: []types.CompiledInstruction{
			{ProgramIDIndex: 3, Accounts: []uint8{2, 1}, Data: binary.LittleEndian.AppendUint32(nil, voteVote)},
		},
	}
}

func NewVote(t *testing.T, node, authority testsig.Keypair, voteAccount types.Pubkey) *types.Transaction {
	t.Helper()
	return Sign(t, NewVoteMessage(node.Pubkey, authority.Pubkey, voteAccount), node, authority)
}

/*
NewV0TransferMessage returns v0 message with static keys [payer, system program]
and single instruction which refers to the payer and to every account loaded
by "lookups" (in the order loaded addresses are appended to the static keys).
*/
func NewV0TransferMessage(payer types.Pubkey, lookups ...types.MessageAddressTableLookup) *types.MessageV0 {
	msg := &types.MessageV0{
		Header:              types.NewMessageHeader(1, 0, 1),
		AccountKeys:         []types.Pubkey{payer, types.SystemProgramID},
		RecentBlockhash:     types.NewUniqueHash(),
		AddressTableLookups: lookups,
	}
	accounts := []uint8{0}
	for i := 0; i < msg.NumLookupAccounts(); i++ {
		accounts = append(accounts, uint8(2+i))
	}
	msg.Instructions = []types.CompiledInstruction{{ProgramIDIndex: 1, Accounts: accounts, Data: TransferData(1)}}
	return msg
}

func NewV0Transfer(t *testing.T, payer testsig.Keypair, lookups ...types.MessageAddressTableLookup) *types.VersionedTransaction {
	t.Helper()
	return SignVersioned(t, NewV0TransferMessage(payer.Pubkey, lookups...), payer)
}

// Sign creates legacy transaction of "msg" signed by "signers".
func Sign(t *testing.T, msg *types.Message, signers ...testsig.Keypair) *types.Transaction {
	t.Helper()
	tx := types.NewTransaction(msg)
	require.NoError(t, tx.Sign(testsig.SignFuncs(signers...)...))
	return tx
}

/*
SignVersioned creates versioned transaction of "msg" signed by "signers".
Signer count is not checked against the message header so the function can
be used to create invalid transactions.
*/
func SignVersioned(t *testing.T, msg types.VersionedMessage, signers ...testsig.Keypair) *types.VersionedTransaction {
	t.Helper()
	data, err := msg.Serialize()
	require.NoError(t, err)
	tx := &types.VersionedTransaction{Message: msg, Signatures: make([]types.Signature, len(signers))}
	for i, s := range signers {
		tx.Signatures[i], err = s.Sign(data)
		require.NoError(t, err)
	}
	return tx
}
