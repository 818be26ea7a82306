package jsonrepo

import (
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-bank-datagen/internal/domain"
)

// amount is a decimal written as a JSON number with two decimals.
type amount decimal.Decimal

// MarshalJSON implements the json.Marshaler interface.
func (a amount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(a).StringFixed(2)), nil
}

// UnmarshalJSON accepts both numbers and quoted strings.
func (a *amount) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}

	*a = amount(d)

	return nil
}

type accountDocument struct {
	Number   int64              `json:"accountNumber"`
	ClientID string             `json:"clientId"`
	Type     domain.AccountType `json:"accountType"`
	Balance  amount             `json:"balance"`
}

func newAccountDocuments(accounts []domain.Account) []accountDocument {
	docs := make([]accountDocument, 0, len(accounts))

	for _, a := range accounts {
		docs = append(docs, accountDocument{
			Number:   a.Number,
			ClientID: a.ClientID,
			Type:     a.Type,
			Balance:  amount(a.Balance),
		})
	}

	return docs
}

func (d accountDocument) account() domain.Account {
	return domain.Account{
		Number:   d.Number,
		ClientID: d.ClientID,
		Type:     d.Type,
		Balance:  decimal.Decimal(d.Balance),
	}
}

type transactionDocument struct {
	ID          int64                  `json:"transactionId"`
	Amount      amount                 `json:"amount"`
	Type        domain.TransactionKind `json:"transactionType"`
	Date        domain.Date            `json:"date"`
	SenderID    *int64                 `json:"senderId"`
	RecipientID *int64                 `json:"recipientId"`
}

func newTransactionDocuments(transactions []domain.Transaction) []transactionDocument {
	docs := make([]transactionDocument, 0, len(transactions))

	for _, t := range transactions {
		docs = append(docs, transactionDocument{
			ID:          t.ID,
			Amount:      amount(t.Amount),
			Type:        t.Kind,
			Date:        t.Date,
			SenderID:    t.SourceID,
			RecipientID: t.DestinationID,
		})
	}

	return docs
}
