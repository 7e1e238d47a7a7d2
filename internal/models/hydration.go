package models

import "time"

type HydrationLog struct {
	Stamp
	AmountML int `json:"amount_ml"`
}

func NewHydrationLog(at time.Time, amountML int) HydrationLog {
	return HydrationLog{Stamp: NewStamp(at), AmountML: amountML}
}

func (h *HydrationLog) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	h.Stamp = decodeStamp(f)
	h.AmountML = f.int("amount_ml", 0)
	return nil
}
