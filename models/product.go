package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product corresponds to a document in the 'products' collection.
//
// The Cloudinary public IDs are stored next to the URLs so that updates and
// deletes can address the remote assets directly instead of re-deriving the
// identifier from the URL.
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"product_name" json:"product_name"`
	Description   string             `bson:"product_description" json:"product_description"`
	Category      string             `bson:"category" json:"category"`
	SellerID      string             `bson:"seller_id,omitempty" json:"seller_id,omitempty"`
	ProductType   string             `bson:"product_type" json:"product_type"`
	OriginalPrice *float64           `bson:"original_price,omitempty" json:"original_price,omitempty"`
	SalePrice     float64            `bson:"sale_price" json:"sale_price"`
	ImageURL      string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	VideoURL      string             `bson:"video_url,omitempty" json:"videoUrl,omitempty"`
	ImagePublicID string             `bson:"image_public_id,omitempty" json:"-"`
	VideoPublicID string             `bson:"video_public_id,omitempty" json:"-"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}
