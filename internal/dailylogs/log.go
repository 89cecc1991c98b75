package dailylogs

// BodyWeightLog holds one body-weight measurement per day. Date is the
// plain key value sent by the client, one row per distinct value.
type BodyWeightLog struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

// NutritionLog holds the daily nutrient totals. All nutrient fields are
// optional and are replaced together on every upsert.
type NutritionLog struct {
	Date     string   `json:"date"`
	Calories *int     `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
}
