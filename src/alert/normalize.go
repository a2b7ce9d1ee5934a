package alert

import (
	"strings"
	"time"

	"alertpilot/src/model"
)

// Normalize maps a validated payload onto the canonical record. Pure field
// coalescing, no side effects:
//
//	price     = price ?? close ?? 0
//	strategy  = strategy ?? alert_name
//	timestamp = timestamp ?? bar_time ?? now
//	volume    = volume ?? volume_24h
//
// It is total over any payload Validate accepted, so price and timestamp are
// always set on the result.
func Normalize(raw model.RawAlert, now time.Time) model.CanonicalAlert {
	out := model.CanonicalAlert{}

	symbol, _ := stringField(raw, "symbol")
	out.Symbol = strings.ToUpper(strings.TrimSpace(symbol))

	if price, ok := numberField(raw, "price"); ok {
		out.Price = price
	} else if closePrice, ok := numberField(raw, "close"); ok {
		out.Price = closePrice
	}

	action, _ := stringField(raw, "action")
	out.Action = strings.ToLower(action)

	if strategy, ok := stringField(raw, "strategy"); ok {
		out.Strategy = strategy
	} else if name, ok := stringField(raw, "alert_name"); ok {
		out.Strategy = name
	}

	out.Timeframe, _ = stringField(raw, "timeframe")
	out.Exchange, _ = stringField(raw, "exchange")
	out.Message, _ = stringField(raw, "message")
	out.MACD, _ = stringField(raw, "macd")

	if ts, ok := numberField(raw, "timestamp"); ok {
		out.Timestamp = int64(ts)
	} else if barTime, ok := numberField(raw, "bar_time"); ok {
		out.Timestamp = int64(barTime)
	} else {
		out.Timestamp = now.UnixMilli()
	}

	if volume, ok := numberField(raw, "volume"); ok {
		out.Volume = &volume
	} else if volume, ok := numberField(raw, "volume_24h"); ok {
		out.Volume = &volume
	}

	if rsi, ok := numberField(raw, "rsi"); ok {
		out.RSI = &rsi
	}

	return out
}
