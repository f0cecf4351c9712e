package pulse

import "github.com/oliverbestmann/webgpu/wgpu"

var blendComponentOver = wgpu.BlendComponent{
	SrcFactor: wgpu.BlendFactorSrcAlpha,
	DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
	Operation: wgpu.BlendOperationAdd,
}

var blendComponentAdd = wgpu.BlendComponent{
	SrcFactor: wgpu.BlendFactorOne,
	DstFactor: wgpu.BlendFactorOne,
	Operation: wgpu.BlendOperationAdd,
}

var blendComponentReplace = wgpu.BlendComponent{
	SrcFactor: wgpu.BlendFactorOne,
	DstFactor: wgpu.BlendFactorZero,
	Operation: wgpu.BlendOperationAdd,
}

// BlendStateAlpha blends straight alpha colors over the target.
var BlendStateAlpha = wgpu.BlendState{
	Color: blendComponentOver,
	Alpha: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
}

var BlendStateAdd = wgpu.BlendState{
	Color: blendComponentAdd,
	Alpha: blendComponentAdd,
}

var BlendStateReplace = wgpu.BlendState{
	Color: blendComponentReplace,
	Alpha: blendComponentReplace,
}

// BlendStateDefault defines the default blend state. You can
// overwrite this to set a different default blend state
var BlendStateDefault = BlendStateAlpha
