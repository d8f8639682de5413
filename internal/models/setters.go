package models

import "github.com/danmuck/modelwire/internal/serialization"

func stringSetter(set func(*string)) serialization.FieldDeserializer {
	return func(n serialization.ParseNode) error {
		val, err := n.GetStringValue()
		if err != nil {
			return err
		}
		set(val)
		return nil
	}
}

func boolSetter(set func(*bool)) serialization.FieldDeserializer {
	return func(n serialization.ParseNode) error {
		val, err := n.GetBoolValue()
		if err != nil {
			return err
		}
		set(val)
		return nil
	}
}

func int64Setter(set func(*int64)) serialization.FieldDeserializer {
	return func(n serialization.ParseNode) error {
		val, err := n.GetInt64Value()
		if err != nil {
			return err
		}
		set(val)
		return nil
	}
}
