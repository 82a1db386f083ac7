// Package domain models the nutrition reference table and the per-weight
// nutrient calculation served by the API.
//
// # Reference Data
//
// The reference table is a semicolon-delimited file with one row per food and
// nutrient values expressed per 100 grams of the food:
//
//	ID;name;calories;iron;...
//	1;Cornstarch;381;0.47 mg;...
//
// Only ID, name, calories and iron are computed on. Every other column is kept
// verbatim in [Food.Extra].
//
// Iron encoding (inconsistent in source data):
//
//	Plain number:      "0.47"     -> 0.47 mg
//	Milligram suffix:  "0.47 mg"  -> 0.47 mg
//	Empty cell:        ""         -> 0 mg
//
// Any other suffix means the reference data is corrupt and loading fails. The
// suffix is stripped without converting units; see [ParseIron].
//
// # Calculation
//
// A query scales a row by multiplier = weight / 100:
//
//	Calories = round(calories * multiplier, 2)          kcal
//	Iron     = round(iron_mg * 1e-3 * multiplier, 6)    grams
//
// Iron is converted from milligrams to grams exactly once, in [Calculate].
// Rounding is decimal rounding of the exact binary value, so repeated calls
// return byte-identical results.
//
// # Degraded Mode
//
// A missing or unreadable reference file produces an empty [Table]. Lookups
// against it report [ErrFoodNotFound] and listing reports [ErrDataUnavailable];
// the process keeps serving.
package domain
