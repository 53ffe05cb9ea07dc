package tokenfusion

import (
	"fmt"
	"strconv"

	bin "github.com/gagliardetto/binary"
	"github.com/pkg/errors"

	"github.com/code-payments/token-fusion/pkg/pointer"
	"github.com/code-payments/token-fusion/pkg/solana/binary"
)

const (
	MaxAssetDataSize = (1 + 4 + // max_supply
		8 + // next_index
		4 + MaxAssetNamePrefixLength + // name_prefix
		4 + MaxAssetUriPrefixLength + // uri_prefix
		4 + MaxAssetUriSuffixLength) // uri_suffix
)

// AssetDataV1 describes the assets minted by a fusion.
type AssetDataV1 struct {
	// Upper bound on the collection size, nil for unlimited.
	MaxSupply *uint32
	// Index used for the next minted asset's name and uri.
	NextIndex  uint64
	NamePrefix string
	UriPrefix  string
	UriSuffix  string
}

// Validate applies the same checks as the program, so invalid data fails
// before anything is sent.
func (obj *AssetDataV1) Validate() error {
	if obj.NextIndex == 0 {
		return ErrInvalidNextAssetIndex
	}
	if len(obj.NamePrefix) > MaxAssetNamePrefixLength {
		return errors.Wrapf(ErrExceededLengthError, "name prefix is %d bytes, max %d", len(obj.NamePrefix), MaxAssetNamePrefixLength)
	}
	if len(obj.UriPrefix) > MaxAssetUriPrefixLength {
		return errors.Wrapf(ErrExceededLengthError, "uri prefix is %d bytes, max %d", len(obj.UriPrefix), MaxAssetUriPrefixLength)
	}
	if len(obj.UriSuffix) > MaxAssetUriSuffixLength {
		return errors.Wrapf(ErrExceededLengthError, "uri suffix is %d bytes, max %d", len(obj.UriSuffix), MaxAssetUriSuffixLength)
	}
	return nil
}

// NextAssetName is the name the program gives the next minted asset.
func (obj *AssetDataV1) NextAssetName() string {
	return obj.NamePrefix + strconv.FormatUint(obj.NextIndex, 10)
}

// NextAssetURI is the metadata uri the program gives the next minted asset.
func (obj *AssetDataV1) NextAssetURI() string {
	return obj.UriPrefix + strconv.FormatUint(obj.NextIndex, 10) + obj.UriSuffix
}

func (obj *AssetDataV1) Clone() AssetDataV1 {
	cloned := *obj
	cloned.MaxSupply = pointer.Uint32Copy(obj.MaxSupply)
	return cloned
}

func (obj *AssetDataV1) String() string {
	maxSupply := "none"
	if obj.MaxSupply != nil {
		maxSupply = strconv.FormatUint(uint64(*obj.MaxSupply), 10)
	}

	return fmt.Sprintf(
		"AssetDataV1{max_supply=%s,next_index=%d,name_prefix=%q,uri_prefix=%q,uri_suffix=%q}",
		maxSupply,
		obj.NextIndex,
		obj.NamePrefix,
		obj.UriPrefix,
		obj.UriSuffix,
	)
}

func (obj *AssetDataV1) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := binary.WriteOptionalUint32(enc, obj.MaxSupply); err != nil {
		return err
	}
	if err := enc.WriteUint64(obj.NextIndex, bin.LE); err != nil {
		return err
	}
	for _, value := range []string{obj.NamePrefix, obj.UriPrefix, obj.UriSuffix} {
		if err := enc.WriteString(value); err != nil {
			return err
		}
	}
	return nil
}

func (obj *AssetDataV1) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	if obj.MaxSupply, err = binary.ReadOptionalUint32(dec); err != nil {
		return err
	}
	if obj.NextIndex, err = dec.ReadUint64(bin.LE); err != nil {
		return err
	}
	if obj.NamePrefix, err = dec.ReadString(); err != nil {
		return err
	}
	if obj.UriPrefix, err = dec.ReadString(); err != nil {
		return err
	}
	obj.UriSuffix, err = dec.ReadString()
	return err
}
