package model

import "encoding/json"

// LostItem is a lost/found report document. The report fields (title,
// description, location and so on) are supplied by the reporter and stored
// as-is; the board only adds the owner, status and timestamps.
type LostItem struct {
	ID         string
	OwnerID    string
	OwnerEmail string
	Status     string
	Fields     map[string]any
	PhotoMime  string
	CreatedAt  string
	UpdatedAt  string
}

// ItemStatusLost is the status every report is created with. No other
// status is ever assigned.
const ItemStatusLost = "lost"

// System keys added to every report document. Report fields with the same
// names are shadowed by the system values.
const (
	keyID         = "id"
	keyOwnerID    = "userId"
	keyOwnerEmail = "userEmail"
	keyStatus     = "status"
	keyPhotoMime  = "photoMime"
	keyCreatedAt  = "createdAt"
	keyUpdatedAt  = "updatedAt"
)

// MarshalJSON flattens the report fields and the system stamps into a
// single document, the way the records are stored and served.
func (i LostItem) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(i.Fields)+7)
	for k, v := range i.Fields {
		doc[k] = v
	}
	doc[keyID] = i.ID
	doc[keyOwnerID] = i.OwnerID
	doc[keyOwnerEmail] = i.OwnerEmail
	doc[keyStatus] = i.Status
	doc[keyCreatedAt] = i.CreatedAt
	doc[keyUpdatedAt] = i.UpdatedAt
	if i.PhotoMime != "" {
		doc[keyPhotoMime] = i.PhotoMime
	}
	return json.Marshal(doc)
}

// UnmarshalJSON splits a flat document back into system stamps and report
// fields.
func (i *LostItem) UnmarshalJSON(data []byte) error {
	doc := map[string]any{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	i.ID, _ = doc[keyID].(string)
	i.OwnerID, _ = doc[keyOwnerID].(string)
	i.OwnerEmail, _ = doc[keyOwnerEmail].(string)
	i.Status, _ = doc[keyStatus].(string)
	i.PhotoMime, _ = doc[keyPhotoMime].(string)
	i.CreatedAt, _ = doc[keyCreatedAt].(string)
	i.UpdatedAt, _ = doc[keyUpdatedAt].(string)
	for _, k := range []string{keyID, keyOwnerID, keyOwnerEmail, keyStatus, keyPhotoMime, keyCreatedAt, keyUpdatedAt} {
		delete(doc, k)
	}
	i.Fields = doc
	return nil
}
