package objects

import (
	"crypto/rand"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// region Address //////////////////////////////////////////////////////////////////////////////////////////////////////

// AddressLength contains the byte size of a marshaled Address.
const AddressLength = 32

// Address is the identifier of an object (or of an account that owns objects).
type Address [AddressLength]byte

// EmptyAddress is the zero value of an Address.
var EmptyAddress Address

// AddressFromBase58 creates an Address from a base58 encoded string.
func AddressFromBase58(base58String string) (address Address, err error) {
	decodedBytes, err := base58.Decode(base58String)
	if err != nil {
		return address, errors.Errorf("error while decoding base58 encoded Address (%v): %w", err, cerrors.ErrBase58DecodeFailed)
	}

	consumedBytes, err := address.FromBytes(decodedBytes)
	if err != nil {
		return address, errors.Errorf("failed to parse Address from bytes: %w", err)
	}
	if consumedBytes != len(decodedBytes) {
		return EmptyAddress, errors.Errorf("failed to parse Address: %d bytes remaining: %w", len(decodedBytes)-consumedBytes, cerrors.ErrParseBytesFailed)
	}

	return address, nil
}

// FromRandomness fills the Address with random information.
func (a *Address) FromRandomness() (err error) {
	_, err = rand.Read((*a)[:])
	return
}

// FromBytes unmarshals an Address from a sequence of bytes.
func (a *Address) FromBytes(bytes []byte) (consumedBytes int, err error) {
	marshalUtil := marshalutil.New(bytes)
	if err = a.FromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Address from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// FromMarshalUtil unmarshals an Address using a MarshalUtil (for easier unmarshalling).
func (a *Address) FromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (err error) {
	addressBytes, err := marshalUtil.ReadBytes(AddressLength)
	if err != nil {
		return errors.Errorf("failed to parse Address (%v): %w", err, cerrors.ErrParseBytesFailed)
	}
	copy((*a)[:], addressBytes)

	return nil
}

// RegisterAlias allows to register a human-readable alias for the Address which will be used as a replacement for the
// String method.
func (a Address) RegisterAlias(alias string) {
	_addressAliasesMutex.Lock()
	defer _addressAliasesMutex.Unlock()

	_addressAliases[a] = alias
}

// Alias returns the human-readable alias of the Address (or the base58 encoded bytes of no alias was set).
func (a Address) Alias() (alias string) {
	_addressAliasesMutex.RLock()
	defer _addressAliasesMutex.RUnlock()

	if existingAlias, exists := _addressAliases[a]; exists {
		return existingAlias
	}

	return a.Base58()
}

// UnregisterAlias allows to unregister a previously registered alias.
func (a Address) UnregisterAlias() {
	_addressAliasesMutex.Lock()
	defer _addressAliasesMutex.Unlock()

	delete(_addressAliases, a)
}

// Bytes returns a marshaled version of the Address.
func (a Address) Bytes() []byte {
	return a[:]
}

// Base58 returns a base58 encoded version of the Address.
func (a Address) Base58() string {
	return base58.Encode(a[:])
}

// String creates a human-readable version of the Address.
func (a Address) String() string {
	return "Address(" + a.Alias() + ")"
}

var (
	_addressAliases      = make(map[Address]string)
	_addressAliasesMutex = sync.RWMutex{}
)

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region address derivation ///////////////////////////////////////////////////////////////////////////////////////////

const (
	// objectAddressScheme separates addresses derived from a creation counter from other derivations.
	objectAddressScheme byte = 0xFD

	// namedObjectAddressScheme separates addresses derived from a user supplied seed from other derivations.
	namedObjectAddressScheme byte = 0xFE
)

// DeriveObjectAddress returns the address of the object that owner creates with the given creation number.
func DeriveObjectAddress(owner Address, creationNumber uint64) Address {
	return deriveAddress(marshalutil.New(AddressLength+marshalutil.Uint64Size+1).
		WriteBytes(owner.Bytes()).
		WriteUint64(creationNumber).
		WriteByte(objectAddressScheme).
		Bytes())
}

// DeriveNamedObjectAddress returns the deterministic address of the object that owner creates with the given seed.
func DeriveNamedObjectAddress(owner Address, seed []byte) Address {
	return deriveAddress(marshalutil.New(AddressLength+len(seed)+1).
		WriteBytes(owner.Bytes()).
		WriteBytes(seed).
		WriteByte(namedObjectAddressScheme).
		Bytes())
}

func deriveAddress(preimage []byte) Address {
	return blake2b.Sum256(preimage)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
