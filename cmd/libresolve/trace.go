package main

/*
#include <stdint.h>
*/
import "C"

import (
	"unsafe"

	"github.com/riversideresearch/resolve/tracesink"
)

func fnName(p *C.char) string {
	if p == nil {
		return "[null]"
	}
	return C.GoString(p)
}

//export libresolve_arg_i8
func libresolve_arg_i8(arg C.int8_t, funcName *C.char) {
	initRuntime()
	tracesink.Arg(traceSink, fnName(funcName), int8(arg))
}

//export libresolve_arg_i16
func libresolve_arg_i16(arg C.int16_t, funcName *C.char) {
	initRuntime()
	tracesink.Arg(traceSink, fnName(funcName), int16(arg))
}

//export libresolve_arg_i32
func libresolve_arg_i32(arg C.int32_t, funcName *C.char) {
	initRuntime()
	tracesink.Arg(traceSink, fnName(funcName), int32(arg))
}

//export libresolve_arg_i64
func libresolve_arg_i64(arg C.int64_t, funcName *C.char) {
	initRuntime()
	tracesink.Arg(traceSink, fnName(funcName), int64(arg))
}

//export libresolve_arg_float
func libresolve_arg_float(arg C.float, funcName *C.char) {
	initRuntime()
	tracesink.Arg(traceSink, fnName(funcName), float32(arg))
}

//export libresolve_arg_ptr
func libresolve_arg_ptr(arg unsafe.Pointer, funcName *C.char) {
	initRuntime()
	traceSink.Linef("ARG", "function=%s value(pointer)=0x%x", fnName(funcName), uintptr(arg))
}

//export libresolve_arg_opaque
func libresolve_arg_opaque(funcName *C.char) {
	initRuntime()
	traceSink.Linef("ARG", "function=%s has a runtime argument with opaque type", fnName(funcName))
}

//export libresolve_ret_i8
func libresolve_ret_i8(ret C.int8_t, funcName *C.char) {
	initRuntime()
	tracesink.Ret(traceSink, fnName(funcName), int8(ret))
}

//export libresolve_ret_i16
func libresolve_ret_i16(ret C.int16_t, funcName *C.char) {
	initRuntime()
	tracesink.Ret(traceSink, fnName(funcName), int16(ret))
}

//export libresolve_ret_i32
func libresolve_ret_i32(ret C.int32_t, funcName *C.char) {
	initRuntime()
	tracesink.Ret(traceSink, fnName(funcName), int32(ret))
}

//export libresolve_ret_i64
func libresolve_ret_i64(ret C.int64_t, funcName *C.char) {
	initRuntime()
	tracesink.Ret(traceSink, fnName(funcName), int64(ret))
}

//export libresolve_ret_float
func libresolve_ret_float(ret C.float, funcName *C.char) {
	initRuntime()
	tracesink.Ret(traceSink, fnName(funcName), float32(ret))
}

//export libresolve_ret_ptr
func libresolve_ret_ptr(ret unsafe.Pointer, funcName *C.char) {
	initRuntime()
	traceSink.Linef("RET", "function=%s returned a pointer with address 0x%x", fnName(funcName), uintptr(ret))
}

//export libresolve_ret_opaque
func libresolve_ret_opaque(ret unsafe.Pointer, funcName *C.char) {
	initRuntime()
	traceSink.Linef("RET", "function=%s returned opaque value at 0x%x", fnName(funcName), uintptr(ret))
}

//export libresolve_ret_void
func libresolve_ret_void(funcName *C.char) {
	initRuntime()
	traceSink.Linef("RET", "function=%s returned void", fnName(funcName))
}

//export libresolve_bb
func libresolve_bb(index C.int64_t, funcName *C.char) {
	initRuntime()
	traceSink.BB(int(index), fnName(funcName))
}
