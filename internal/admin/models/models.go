package models

import (
	"fmt"
	"strings"

	id "github.com/illustspace/gsr/pkg/domain"
	dErrors "github.com/illustspace/gsr/pkg/domain-errors"
	"github.com/illustspace/gsr/pkg/platform/audit"
)

// MintPolicy decides who may mint alias tokens.
type MintPolicy string

const (
	// MintPolicyOpen lets any authenticated caller mint for themselves.
	MintPolicyOpen MintPolicy = "open"
	// MintPolicyAdmin restricts minting to the administrator.
	MintPolicyAdmin MintPolicy = "admin"
)

func ParseMintPolicy(s string) (MintPolicy, error) {
	switch p := MintPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case MintPolicyOpen, MintPolicyAdmin:
		return p, nil
	case "":
		return MintPolicyOpen, nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown mint policy %q", s))
	}
}

// MaxMetadataKeyLength bounds contract metadata keys.
const MaxMetadataKeyLength = 128

// ContractMetadata is the administrator-managed key/value metadata of the registry.
type ContractMetadata map[string][]byte

func (m ContractMetadata) Clone() ContractMetadata {
	out := make(ContractMetadata, len(m))
	for k, v := range m {
		out[k] = append([]byte(nil), v...)
	}
	return out
}

// SetAdministratorRequest is the body of PUT /admin/administrator.
type SetAdministratorRequest struct {
	Administrator string `json:"administrator"`

	parsed id.PrimaryAddress
}

func (r *SetAdministratorRequest) Validate() error {
	addr, err := id.ParsePrimaryAddress(r.Administrator)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "administrator: "+dErrors.Message(err))
	}
	r.parsed = addr
	return nil
}

func (r *SetAdministratorRequest) Address() id.PrimaryAddress {
	return r.parsed
}

// SetMetadataRequest is the body of PUT /admin/metadata.
type SetMetadataRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (r *SetMetadataRequest) Validate() error {
	return ValidateMetadataKey(r.Key)
}

func ValidateMetadataKey(key string) error {
	if key == "" {
		return dErrors.New(dErrors.CodeValidation, "key is required")
	}
	if len(key) > MaxMetadataKeyLength {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("key must be at most %d bytes", MaxMetadataKeyLength))
	}
	return nil
}

type AdministratorResponse struct {
	Administrator string `json:"administrator"`
}

type MetadataResponse struct {
	Metadata map[string]string `json:"metadata"`
}

func NewMetadataResponse(md ContractMetadata) *MetadataResponse {
	out := make(map[string]string, len(md))
	for k, v := range md {
		out[k] = string(v)
	}
	return &MetadataResponse{Metadata: out}
}

type AuditTrailResponse struct {
	Subject string        `json:"subject"`
	Events  []audit.Event `json:"events"`
}

func NewAuditTrailResponse(subject id.PrimaryAddress, events []audit.Event) *AuditTrailResponse {
	if events == nil {
		events = []audit.Event{}
	}
	return &AuditTrailResponse{Subject: subject.String(), Events: events}
}
