package ast

// ModuleItem is any top-level item that can appear inside a module block.
type ModuleItem interface {
	Node
	isModuleItem()
}

func (*BadModuleItem) isModuleItem() {}

func (*DocComment) isModuleItem() {}

func (*Comment) isModuleItem() {}

func (*Attribute) isModuleItem() {}

func (*Use) isModuleItem() {}

func (*Struct) isModuleItem() {}

func (*Function) isModuleItem() {}
