// Package models defines the domain types shared by the PrayLink server and
// client: users, posts, comments, tithes and their enumerations.
package models

// Religion is the faith a user declares at registration.
type Religion string

const (
	Christianity Religion = "Christianity"
	Islam        Religion = "Islam"
	Judaism      Religion = "Judaism"
	Hinduism     Religion = "Hinduism"
	Buddhism     Religion = "Buddhism"
	Sikhism      Religion = "Sikhism"
	Agnostic     Religion = "Agnostic"
	Atheist      Religion = "Atheist"
	OtherFaith   Religion = "Other"
)

var religions = []Religion{Christianity, Islam, Judaism, Hinduism, Buddhism, Sikhism, Agnostic, Atheist, OtherFaith}

func (r Religion) Valid() bool {
	for _, v := range religions {
		if v == r {
			return true
		}
	}
	return false
}

// Religions lists every supported religion in display order.
func Religions() []Religion {
	return append([]Religion(nil), religions...)
}

// Visibility controls who may see an author's posts.
type Visibility string

const (
	VisibilityPublic       Visibility = "Public"
	VisibilitySameReligion Visibility = "Same Religion Only"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilitySameReligion
}

// Language is a supported content/UI language.
type Language string

const (
	English    Language = "English"
	Spanish    Language = "Spanish"
	French     Language = "French"
	German     Language = "German"
	Arabic     Language = "Arabic"
	Hebrew     Language = "Hebrew"
	Hindi      Language = "Hindi"
	Portuguese Language = "Portuguese"
)

var languages = []Language{English, Spanish, French, German, Arabic, Hebrew, Hindi, Portuguese}

func (l Language) Valid() bool {
	for _, v := range languages {
		if v == l {
			return true
		}
	}
	return false
}

// SupportedLanguages lists every supported language.
func SupportedLanguages() []Language {
	return append([]Language(nil), languages...)
}

// PromotionTier is a paid visibility boost for miracle requests.
type PromotionTier string

const (
	TierNone     PromotionTier = "None"
	TierSilver   PromotionTier = "Silver"
	TierGold     PromotionTier = "Gold"
	TierPlatinum PromotionTier = "Platinum"
)

// Rank orders tiers for feed sorting. Unknown tiers rank with None.
func (t PromotionTier) Rank() int {
	switch t {
	case TierSilver:
		return 1
	case TierGold:
		return 2
	case TierPlatinum:
		return 3
	default:
		return 0
	}
}

func (t PromotionTier) Valid() bool {
	return t == TierNone || t == TierSilver || t == TierGold || t == TierPlatinum
}

// Promoted reports whether the tier boosts the post at all.
func (t PromotionTier) Promoted() bool {
	return t.Rank() > 0
}

// PaymentMethod identifies which external collaborator captured a tithe.
type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "Credit Card"
	PaymentPayPal     PaymentMethod = "PayPal"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCreditCard || m == PaymentPayPal
}

// InteractionKind is the counter an interaction increments.
type InteractionKind string

const (
	InteractionLike InteractionKind = "like"
	InteractionPray InteractionKind = "pray"
)
