package feed

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"treasury_go/internal/domain"
	"treasury_go/pkg/price"
)

// ProductResolver looks up reference data for a product id.
type ProductResolver interface {
	Product(id string) (domain.Product, error)
}

// Parser turns feed lines into domain values. Every failure is a *domain.ParseError
// except unknown product ids, which wrap domain.ErrUnknownProduct.
type Parser struct {
	products   ProductResolver
	bounds     *price.Bounds
	outOfRange uint64
}

func NewParser(products ProductResolver) *Parser {
	return &Parser{products: products}
}

// WithBounds enables the price range check. Prices outside b are still accepted,
// but logged and counted.
func (p *Parser) WithBounds(b price.Bounds) *Parser {
	p.bounds = &b
	return p
}

// OutOfRange is the number of prices seen outside the configured bounds.
func (p *Parser) OutOfRange() uint64 {
	return p.outOfRange
}

func (p *Parser) checkBounds(productID string, v price.Value) {
	if p.bounds == nil || p.bounds.Contains(v) {
		return
	}
	p.outOfRange++
	slog.Warn("Price outside configured bounds",
		slog.String("product", productID),
		slog.String("price", v.String()),
		slog.String("min", p.bounds.Min.String()),
		slog.String("max", p.bounds.Max.String()),
	)
}

func split(line string) []string {
	fields := strings.Split(strings.TrimSpace(line), ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

func parsePrice(field string) (price.Value, error) {
	v, err := price.Parse(field)
	if err != nil {
		return price.Value{}, domain.NewParseError("price", field, err)
	}
	return v, nil
}

func parseQuantity(field string) (int64, error) {
	q, err := strconv.ParseInt(field, 10, 64)
	if err != nil {
		return 0, domain.NewParseError("quantity", field, err)
	}
	if q < 0 {
		return 0, domain.NewParseError("quantity", field, fmt.Errorf("negative quantity"))
	}
	return q, nil
}

func (p *Parser) product(id string) (domain.Product, error) {
	if id == "" {
		return domain.Product{}, domain.NewParseError("product", id, fmt.Errorf("empty product id"))
	}
	return p.products.Product(id)
}

// ParseOrderBook reads "productId,midPrice,MID,(price,quantity,BID|OFFER)xN".
func (p *Parser) ParseOrderBook(line string) (domain.OrderBook, error) {
	f := split(line)
	if len(f) < 3 || (len(f)-3)%3 != 0 {
		return domain.OrderBook{}, domain.NewParseError("market_data", line, fmt.Errorf("expected 3+3N fields, got %d", len(f)))
	}
	if f[2] != "MID" {
		return domain.OrderBook{}, domain.NewParseError("market_data", f[2], fmt.Errorf("expected MID marker"))
	}
	mid, err := parsePrice(f[1])
	if err != nil {
		return domain.OrderBook{}, err
	}

	product, err := p.product(f[0])
	if err != nil {
		return domain.OrderBook{}, err
	}
	p.checkBounds(product.ID, mid)

	var bids, offers []domain.Order
	for i := 3; i+2 < len(f); i += 3 {
		px, err := parsePrice(f[i])
		if err != nil {
			return domain.OrderBook{}, err
		}
		qty, err := parseQuantity(f[i+1])
		if err != nil {
			return domain.OrderBook{}, err
		}
		side, err := domain.ParsePricingSide(f[i+2])
		if err != nil {
			return domain.OrderBook{}, domain.NewParseError("side", f[i+2], err)
		}
		p.checkBounds(product.ID, px)

		if side == domain.Bid {
			bids = append(bids, domain.NewOrder(px, qty, side))
		} else {
			offers = append(offers, domain.NewOrder(px, qty, side))
		}
	}

	return domain.NewOrderBook(product, bids, offers), nil
}

// ParsePrice reads "productId,bidPrice,offerPrice".
func (p *Parser) ParsePrice(line string) (domain.Price, error) {
	f := split(line)
	if len(f) != 3 {
		return domain.Price{}, domain.NewParseError("price_line", line, fmt.Errorf("expected 3 fields, got %d", len(f)))
	}

	bid, err := parsePrice(f[1])
	if err != nil {
		return domain.Price{}, err
	}
	offer, err := parsePrice(f[2])
	if err != nil {
		return domain.Price{}, err
	}

	product, err := p.product(f[0])
	if err != nil {
		return domain.Price{}, err
	}
	p.checkBounds(product.ID, bid)
	p.checkBounds(product.ID, offer)

	return domain.NewPriceFromBidOffer(product, bid, offer), nil
}

// ParseTrade reads "productId,tradeId,price,book,quantity,BUY|SELL".
func (p *Parser) ParseTrade(line string) (domain.Trade, error) {
	f := split(line)
	if len(f) != 6 {
		return domain.Trade{}, domain.NewParseError("trade", line, fmt.Errorf("expected 6 fields, got %d", len(f)))
	}

	px, err := parsePrice(f[2])
	if err != nil {
		return domain.Trade{}, err
	}
	if f[3] == "" {
		return domain.Trade{}, domain.NewParseError("book", f[3], fmt.Errorf("empty book"))
	}
	qty, err := parseQuantity(f[4])
	if err != nil {
		return domain.Trade{}, err
	}
	side, err := domain.ParseSide(f[5])
	if err != nil {
		return domain.Trade{}, domain.NewParseError("side", f[5], err)
	}

	product, err := p.product(f[0])
	if err != nil {
		return domain.Trade{}, err
	}
	p.checkBounds(product.ID, px)

	return domain.Trade{
		Product:  product,
		TradeID:  f[1],
		Price:    px,
		Book:     f[3],
		Quantity: qty,
		Side:     side,
	}, nil
}

// ParseInquiry reads "inquiryId,productId,BUY|SELL,quantity,price,STATE".
func (p *Parser) ParseInquiry(line string) (domain.Inquiry, error) {
	f := split(line)
	if len(f) != 6 {
		return domain.Inquiry{}, domain.NewParseError("inquiry", line, fmt.Errorf("expected 6 fields, got %d", len(f)))
	}
	if f[0] == "" {
		return domain.Inquiry{}, domain.NewParseError("inquiry_id", f[0], fmt.Errorf("empty inquiry id"))
	}

	side, err := domain.ParseSide(f[2])
	if err != nil {
		return domain.Inquiry{}, domain.NewParseError("side", f[2], err)
	}
	qty, err := parseQuantity(f[3])
	if err != nil {
		return domain.Inquiry{}, err
	}
	px, err := parsePrice(f[4])
	if err != nil {
		return domain.Inquiry{}, err
	}
	state, err := domain.ParseInquiryState(f[5])
	if err != nil {
		return domain.Inquiry{}, domain.NewParseError("state", f[5], err)
	}

	product, err := p.product(f[1])
	if err != nil {
		return domain.Inquiry{}, err
	}
	p.checkBounds(product.ID, px)

	return domain.Inquiry{
		ID:       f[0],
		Product:  product,
		Side:     side,
		Quantity: qty,
		Price:    px,
		State:    state,
	}, nil
}
