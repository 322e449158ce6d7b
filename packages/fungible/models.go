package fungible

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
	"lukechampine.com/uint128"

	"github.com/iotaledger/fungible/packages/objects"
)

const (
	// MaxNameLength is the maximum length of the name of an asset class.
	MaxNameLength = 32

	// MaxSymbolLength is the maximum length of the symbol of an asset class.
	MaxSymbolLength = 10
)

// region Metadata /////////////////////////////////////////////////////////////////////////////////////////////////////

// Metadata identifies an asset class by the object that carries its metadata record.
type Metadata struct {
	address objects.Address
}

// MetadataFromAddress returns the Metadata reference of the asset class that lives at the given Address. Holding a
// Metadata reference grants no authority.
func MetadataFromAddress(address objects.Address) Metadata {
	return Metadata{address: address}
}

// Address returns the Address of the object that carries the metadata record.
func (m Metadata) Address() objects.Address {
	return m.address
}

// String returns a human-readable version of the Metadata reference.
func (m Metadata) String() string {
	return "Metadata(" + m.address.Alias() + ")"
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Store ////////////////////////////////////////////////////////////////////////////////////////////////////////

// Store identifies a balance record by the object that carries it.
type Store struct {
	address objects.Address
}

// StoreFromAddress returns the Store reference for the given Address.
func StoreFromAddress(address objects.Address) Store {
	return Store{address: address}
}

// Address returns the Address of the object that carries the store record.
func (s Store) Address() objects.Address {
	return s.address
}

// String returns a human-readable version of the Store reference.
func (s Store) String() string {
	return "Store(" + s.address.Alias() + ")"
}

// storeLess orders Addresses for the KeyedMutex.
func storeLess(a, b objects.Address) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return false
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region SupplyPolicy /////////////////////////////////////////////////////////////////////////////////////////////////

// SupplyPolicyType encodes how the supply of an asset class is accounted.
type SupplyPolicyType uint8

const (
	// UntrackedSupply does not keep a supply counter at all.
	UntrackedSupply SupplyPolicyType = iota

	// TrackedSupply keeps a supply counter without a maximum.
	TrackedSupply

	// CappedSupply keeps a supply counter that can not exceed a maximum.
	CappedSupply
)

// String returns a human-readable version of the SupplyPolicyType.
func (s SupplyPolicyType) String() string {
	switch s {
	case UntrackedSupply:
		return "UntrackedSupply"
	case TrackedSupply:
		return "TrackedSupply"
	case CappedSupply:
		return "CappedSupply"
	default:
		return "SupplyPolicyType(unknown)"
	}
}

// SupplyPolicy determines whether and how the supply of an asset class is tracked.
type SupplyPolicy struct {
	policyType SupplyPolicyType
	maximum    uint128.Uint128
}

// Untracked returns a SupplyPolicy that does not track the supply.
func Untracked() SupplyPolicy {
	return SupplyPolicy{policyType: UntrackedSupply}
}

// Tracked returns a SupplyPolicy that tracks the supply without limiting it.
func Tracked() SupplyPolicy {
	return SupplyPolicy{policyType: TrackedSupply, maximum: uint128.Max}
}

// Capped returns a SupplyPolicy that tracks the supply and limits it to the given maximum.
func Capped(maximum uint128.Uint128) SupplyPolicy {
	return SupplyPolicy{policyType: CappedSupply, maximum: maximum}
}

// Type returns the SupplyPolicyType.
func (s SupplyPolicy) Type() SupplyPolicyType {
	return s.policyType
}

// IsTracked returns true if a supply counter is kept.
func (s SupplyPolicy) IsTracked() bool {
	return s.policyType != UntrackedSupply
}

// Maximum returns the cap of the supply and a flag that indicates whether a cap exists.
func (s SupplyPolicy) Maximum() (maximum uint128.Uint128, capped bool) {
	return s.maximum, s.policyType == CappedSupply
}

// String returns a human-readable version of the SupplyPolicy.
func (s SupplyPolicy) String() string {
	return stringify.Struct("SupplyPolicy",
		stringify.StructField("type", s.policyType),
		stringify.StructField("maximum", s.maximum.String()),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region metadataRecord ///////////////////////////////////////////////////////////////////////////////////////////////

// metadataRecord is the persisted description of an asset class. The supply counter of a tracked asset class is live
// state of the Ledger; current only holds the value of its last checkpoint.
type metadataRecord struct {
	name     string
	symbol   string
	decimals uint8
	policy   SupplyPolicy
	current  uint128.Uint128
	parallel bool
}

// metadataRecordFromBytes unmarshals a metadataRecord from a sequence of bytes.
func metadataRecordFromBytes(bytes []byte) (record *metadataRecord, err error) {
	marshalUtil := marshalutil.New(bytes)
	record = new(metadataRecord)

	if record.name, err = readString(marshalUtil); err != nil {
		return nil, errors.Errorf("failed to parse name: %w", err)
	}
	if record.symbol, err = readString(marshalUtil); err != nil {
		return nil, errors.Errorf("failed to parse symbol: %w", err)
	}
	if record.decimals, err = marshalUtil.ReadUint8(); err != nil {
		return nil, errors.Errorf("failed to parse decimals (%v): %w", err, cerrors.ErrParseBytesFailed)
	}

	policyType, err := marshalUtil.ReadUint8()
	if err != nil {
		return nil, errors.Errorf("failed to parse supply policy (%v): %w", err, cerrors.ErrParseBytesFailed)
	}
	record.policy.policyType = SupplyPolicyType(policyType)

	maximumBytes, err := marshalUtil.ReadBytes(16)
	if err != nil {
		return nil, errors.Errorf("failed to parse maximum supply (%v): %w", err, cerrors.ErrParseBytesFailed)
	}
	record.policy.maximum = uint128.FromBytes(maximumBytes)

	currentBytes, err := marshalUtil.ReadBytes(16)
	if err != nil {
		return nil, errors.Errorf("failed to parse current supply (%v): %w", err, cerrors.ErrParseBytesFailed)
	}
	record.current = uint128.FromBytes(currentBytes)

	if record.parallel, err = marshalUtil.ReadBool(); err != nil {
		return nil, errors.Errorf("failed to parse parallel flag (%v): %w", err, cerrors.ErrParseBytesFailed)
	}

	return record, nil
}

// Bytes returns a marshaled version of the metadataRecord.
func (m *metadataRecord) Bytes() []byte {
	maximumBytes := make([]byte, 16)
	m.policy.maximum.PutBytes(maximumBytes)
	currentBytes := make([]byte, 16)
	m.current.PutBytes(currentBytes)

	marshalUtil := marshalutil.New()
	writeString(marshalUtil, m.name)
	writeString(marshalUtil, m.symbol)

	return marshalUtil.
		WriteUint8(m.decimals).
		WriteUint8(uint8(m.policy.policyType)).
		WriteBytes(maximumBytes).
		WriteBytes(currentBytes).
		WriteBool(m.parallel).
		Bytes()
}

// String returns a human-readable version of the metadataRecord.
func (m *metadataRecord) String() string {
	return stringify.Struct("Metadata",
		stringify.StructField("name", m.name),
		stringify.StructField("symbol", m.symbol),
		stringify.StructField("decimals", m.decimals),
		stringify.StructField("policy", m.policy),
		stringify.StructField("current", m.current.String()),
		stringify.StructField("parallel", m.parallel),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region storeRecord //////////////////////////////////////////////////////////////////////////////////////////////////

// storeRecord is the persisted balance of a holder in one asset class.
type storeRecord struct {
	metadata             Metadata
	balance              uint64
	allowUngatedTransfer bool
}

// storeRecordFromBytes unmarshals a storeRecord from a sequence of bytes.
func storeRecordFromBytes(bytes []byte) (record *storeRecord, err error) {
	marshalUtil := marshalutil.New(bytes)
	record = new(storeRecord)

	if err = record.metadata.address.FromMarshalUtil(marshalUtil); err != nil {
		return nil, errors.Errorf("failed to parse metadata of store: %w", err)
	}
	if record.balance, err = marshalUtil.ReadUint64(); err != nil {
		return nil, errors.Errorf("failed to parse balance (%v): %w", err, cerrors.ErrParseBytesFailed)
	}
	if record.allowUngatedTransfer, err = marshalUtil.ReadBool(); err != nil {
		return nil, errors.Errorf("failed to parse transfer gate (%v): %w", err, cerrors.ErrParseBytesFailed)
	}

	return record, nil
}

// Bytes returns a marshaled version of the storeRecord.
func (s *storeRecord) Bytes() []byte {
	return marshalutil.New(objects.AddressLength + marshalutil.Uint64Size + marshalutil.BoolSize).
		WriteBytes(s.metadata.address.Bytes()).
		WriteUint64(s.balance).
		WriteBool(s.allowUngatedTransfer).
		Bytes()
}

// String returns a human-readable version of the storeRecord.
func (s *storeRecord) String() string {
	return stringify.Struct("Store",
		stringify.StructField("metadata", s.metadata),
		stringify.StructField("balance", s.balance),
		stringify.StructField("allowUngatedTransfer", s.allowUngatedTransfer),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region utility functions ////////////////////////////////////////////////////////////////////////////////////////////

func writeString(marshalUtil *marshalutil.MarshalUtil, value string) {
	marshalUtil.WriteUint16(uint16(len(value)))
	marshalUtil.WriteBytes([]byte(value))
}

func readString(marshalUtil *marshalutil.MarshalUtil) (value string, err error) {
	length, err := marshalUtil.ReadUint16()
	if err != nil {
		return "", errors.Errorf("failed to parse string length (%v): %w", err, cerrors.ErrParseBytesFailed)
	}

	valueBytes, err := marshalUtil.ReadBytes(int(length))
	if err != nil {
		return "", errors.Errorf("failed to parse string (%v): %w", err, cerrors.ErrParseBytesFailed)
	}

	return string(valueBytes), nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
