package objects

import (
	"github.com/iotaledger/hive.go/stringify"
)

// region Signer ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Signer represents the identity of the caller of an operation. The host that executes an operation is responsible
// for authenticating the caller before it hands out a Signer.
type Signer struct {
	address Address
}

// NewSigner returns a Signer for an already authenticated Address.
func NewSigner(address Address) Signer {
	return Signer{address: address}
}

// Address returns the Address of the Signer.
func (s Signer) Address() Address {
	return s.address
}

// String returns a human-readable version of the Signer.
func (s Signer) String() string {
	return stringify.Struct("Signer",
		stringify.StructField("address", s.address),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ConstructorRef ///////////////////////////////////////////////////////////////////////////////////////////////

// ConstructorRef is handed out exactly once, at the time an object is created. Whoever holds it can attach records to
// the object and derive further capabilities (like a DeleteRef) from it.
type ConstructorRef struct {
	address   Address
	deletable bool
}

// Address returns the Address of the object that was created.
func (c *ConstructorRef) Address() Address {
	return c.address
}

// Deletable returns true if the object can be deleted again.
func (c *ConstructorRef) Deletable() bool {
	return c.deletable
}

// GenerateDeleteRef returns a DeleteRef for the object (fails for non-deletable objects).
func (c *ConstructorRef) GenerateDeleteRef() (deleteRef *DeleteRef, err error) {
	if !c.deletable {
		return nil, ErrNotDeletable
	}

	return &DeleteRef{address: c.address}, nil
}

// String returns a human-readable version of the ConstructorRef.
func (c *ConstructorRef) String() string {
	return stringify.Struct("ConstructorRef",
		stringify.StructField("address", c.address),
		stringify.StructField("deletable", c.deletable),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region DeleteRef ////////////////////////////////////////////////////////////////////////////////////////////////////

// DeleteRef grants the permission to delete an object.
type DeleteRef struct {
	address Address
}

// Object returns the Address of the object that the DeleteRef refers to.
func (d *DeleteRef) Object() Address {
	return d.address
}

// String returns a human-readable version of the DeleteRef.
func (d *DeleteRef) String() string {
	return stringify.Struct("DeleteRef",
		stringify.StructField("address", d.address),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
